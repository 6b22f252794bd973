package repository

import (
	"context"
	"time"

	"gearshare-backend/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Equipment, int32, error)

	// Availability settings (owner-mutated, engine-read snapshot)
	GetAvailability(ctx context.Context, equipmentID int32) (*domain.Availability, error)
	SaveAvailability(ctx context.Context, av *domain.Availability) error
}

type RentalRepository interface {
	Create(ctx context.Context, rt *domain.RentalRequest) error
	GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error)
	Update(ctx context.Context, rt *domain.RentalRequest) error
	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error)
	// ListRealizedByEquipment returns the approved/active rentals for an
	// equipment whose windows intersect [from, to]. The availability
	// calculator treats these as the bookings that consume calendar slots.
	ListRealizedByEquipment(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.RentalRequest, error)
	// ListStaleRequested returns REQUESTED rentals created before the cutoff.
	ListStaleRequested(ctx context.Context, cutoff time.Time) ([]domain.RentalRequest, error)
	// ListEndingOn returns ACTIVE rentals whose end date falls on the day.
	ListEndingOn(ctx context.Context, day time.Time) ([]domain.RentalRequest, error)
}

type TransitionRepository interface {
	Create(ctx context.Context, tr *domain.RentalTransition) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalTransition, error)
}

// ConditionLogRepository is append-only by contract: no update or delete.
type ConditionLogRepository interface {
	Create(ctx context.Context, log *domain.ConditionLog) error
	GetByID(ctx context.Context, id string) (*domain.ConditionLog, error)
	ListByRental(ctx context.Context, rentalID int32) ([]domain.ConditionLog, error)
	HasType(ctx context.Context, rentalID int32, logType domain.ConditionLogType) (bool, error)
}

type FlagRepository interface {
	Create(ctx context.Context, flag *domain.TaskFlag) error
	GetByID(ctx context.Context, id string) (*domain.TaskFlag, error)
	Update(ctx context.Context, flag *domain.TaskFlag) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.TaskFlag, error)
	ListOpenByRental(ctx context.Context, rentalID int32) ([]domain.TaskFlag, error)
	HasCriticalOpen(ctx context.Context, rentalID int32) (bool, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
