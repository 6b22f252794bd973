package service

import (
	"context"
	"time"

	"gearshare-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rt *domain.RentalRequest) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rt *domain.RentalRequest) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.RentalRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.RentalRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListRealizedByEquipment(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, equipmentID, from, to)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRepo) ListStaleRequested(ctx context.Context, cutoff time.Time) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRepo) ListEndingOn(ctx context.Context, day time.Time) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}
func (m *MockEquipmentRepo) GetAvailability(ctx context.Context, equipmentID int32) (*domain.Availability, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Availability), args.Error(1)
}
func (m *MockEquipmentRepo) SaveAvailability(ctx context.Context, av *domain.Availability) error {
	args := m.Called(ctx, av)
	return args.Error(0)
}

// MockTransitionRepo
type MockTransitionRepo struct {
	mock.Mock
}

func (m *MockTransitionRepo) Create(ctx context.Context, tr *domain.RentalTransition) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}
func (m *MockTransitionRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalTransition, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.RentalTransition), args.Error(1)
}

// MockConditionLogRepo
type MockConditionLogRepo struct {
	mock.Mock
}

func (m *MockConditionLogRepo) Create(ctx context.Context, log *domain.ConditionLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
func (m *MockConditionLogRepo) GetByID(ctx context.Context, id string) (*domain.ConditionLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConditionLog), args.Error(1)
}
func (m *MockConditionLogRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.ConditionLog, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.ConditionLog), args.Error(1)
}
func (m *MockConditionLogRepo) HasType(ctx context.Context, rentalID int32, logType domain.ConditionLogType) (bool, error) {
	args := m.Called(ctx, rentalID, logType)
	return args.Bool(0), args.Error(1)
}

// MockFlagRepo
type MockFlagRepo struct {
	mock.Mock
}

func (m *MockFlagRepo) Create(ctx context.Context, flag *domain.TaskFlag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}
func (m *MockFlagRepo) GetByID(ctx context.Context, id string) (*domain.TaskFlag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskFlag), args.Error(1)
}
func (m *MockFlagRepo) Update(ctx context.Context, flag *domain.TaskFlag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}
func (m *MockFlagRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.TaskFlag, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.TaskFlag), args.Error(1)
}
func (m *MockFlagRepo) ListOpenByRental(ctx context.Context, rentalID int32) ([]domain.TaskFlag, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.TaskFlag), args.Error(1)
}
func (m *MockFlagRepo) HasCriticalOpen(ctx context.Context, rentalID int32) (bool, error) {
	args := m.Called(ctx, rentalID)
	return args.Bool(0), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
