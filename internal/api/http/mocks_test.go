package http

import (
	"context"
	"time"

	"gearshare-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) CreateRentalRequest(ctx context.Context, equipmentID, renterID int32, startDate, endDate string) (*domain.RentalRequest, error) {
	args := m.Called(ctx, equipmentID, renterID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalService) Approve(ctx context.Context, rentalID, actorID int32, notes string) (*domain.RentalRequest, error) {
	args := m.Called(ctx, rentalID, actorID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalService) Decline(ctx context.Context, rentalID, actorID int32) (*domain.RentalRequest, error) {
	args := m.Called(ctx, rentalID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalService) BeginPickup(ctx context.Context, rentalID, actorID int32, checklist []domain.ChecklistItem) (*domain.RentalRequest, error) {
	args := m.Called(ctx, rentalID, actorID, checklist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalService) CompleteReturn(ctx context.Context, rentalID, actorID int32, checklist []domain.ChecklistItem) (*domain.RentalRequest, error) {
	args := m.Called(ctx, rentalID, actorID, checklist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalService) RequestExtension(ctx context.Context, rentalID, actorID int32, newEndDate string) (*domain.ExtensionRequest, error) {
	args := m.Called(ctx, rentalID, actorID, newEndDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtensionRequest), args.Error(1)
}
func (m *MockRentalService) ResolveExtension(ctx context.Context, rentalID, actorID int32, approve bool) (*domain.RentalRequest, error) {
	args := m.Called(ctx, rentalID, actorID, approve)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, userID, rentalID int32) (*domain.RentalRequest, error) {
	args := m.Called(ctx, userID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.RentalRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalService) ListLendings(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.RentalRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalService) ListTransitions(ctx context.Context, userID, rentalID int32) ([]domain.RentalTransition, error) {
	args := m.Called(ctx, userID, rentalID)
	return args.Get(0).([]domain.RentalTransition), args.Error(1)
}
func (m *MockRentalService) NextAvailable(ctx context.Context, equipmentID int32) (*time.Time, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}
