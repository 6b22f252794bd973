package service

import (
	"context"
	"time"

	"gearshare-backend/internal/domain"
)

type RentalService interface {
	CreateRentalRequest(ctx context.Context, equipmentID, renterID int32, startDate, endDate string) (*domain.RentalRequest, error)
	Approve(ctx context.Context, rentalID, actorID int32, notes string) (*domain.RentalRequest, error)
	Decline(ctx context.Context, rentalID, actorID int32) (*domain.RentalRequest, error)
	BeginPickup(ctx context.Context, rentalID, actorID int32, checklist []domain.ChecklistItem) (*domain.RentalRequest, error)
	CompleteReturn(ctx context.Context, rentalID, actorID int32, checklist []domain.ChecklistItem) (*domain.RentalRequest, error)

	RequestExtension(ctx context.Context, rentalID, actorID int32, newEndDate string) (*domain.ExtensionRequest, error)
	ResolveExtension(ctx context.Context, rentalID, actorID int32, approve bool) (*domain.RentalRequest, error)

	GetRental(ctx context.Context, userID, rentalID int32) (*domain.RentalRequest, error)
	ListRentals(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error)
	ListLendings(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error)
	ListTransitions(ctx context.Context, userID, rentalID int32) ([]domain.RentalTransition, error)
	NextAvailable(ctx context.Context, equipmentID int32) (*time.Time, error)
}

type ConditionLogService interface {
	Submit(ctx context.Context, log *domain.ConditionLog) (string, error)
	ListForRental(ctx context.Context, rentalID int32) ([]domain.ConditionLog, error)
	HasType(ctx context.Context, rentalID int32, logType domain.ConditionLogType) (bool, error)
}

type FlagService interface {
	Raise(ctx context.Context, flag *domain.TaskFlag) (string, error)
	Acknowledge(ctx context.Context, flagID string, actorID int32) error
	Resolve(ctx context.Context, flagID string, actorID int32, note string) error
	ListOpen(ctx context.Context, rentalID int32) ([]domain.TaskFlag, error)
	ListAll(ctx context.Context, rentalID int32) ([]domain.TaskFlag, error)
	HasCriticalOpenFlag(ctx context.Context, rentalID int32) (bool, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}
