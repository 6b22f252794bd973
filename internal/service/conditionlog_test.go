package service

import (
	"context"
	"testing"

	"gearshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validPickupLog(rentalID, verifiedBy int32) *domain.ConditionLog {
	return &domain.ConditionLog{
		RentalID:     rentalID,
		Type:         domain.ConditionLogTypePickup,
		Condition:    domain.EquipmentConditionGood,
		Photos:       []domain.ConditionPhoto{{URL: "a.jpg"}, {URL: "b.jpg"}},
		VerifiedBy:   verifiedBy,
		Acknowledged: true,
	}
}

func TestSubmitConditionLog_Success(t *testing.T) {
	logRepo := new(MockConditionLogRepo)
	rentalRepo := new(MockRentalRepo)
	noteRepo := new(MockNotificationRepo)
	svc := NewConditionLogService(logRepo, rentalRepo, noteRepo)

	rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.RentalRequest{
		ID: 1, EquipmentID: 10, RenterID: 3, OwnerID: 2, Status: domain.RentalStatusActive,
	}, nil)
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ConditionLog")).Return(nil)
	noteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	log := validPickupLog(1, 3)
	id, err := svc.Submit(context.Background(), log)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, log.ID)
	assert.Equal(t, int32(10), log.EquipmentID)
	for _, p := range log.Photos {
		assert.NotEmpty(t, p.ID)
		assert.False(t, p.Timestamp.IsZero())
	}

	// The other party is told the log exists.
	noteRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 2
	}))
}

func TestSubmitConditionLog_PhotoMinimum(t *testing.T) {
	svc := NewConditionLogService(new(MockConditionLogRepo), new(MockRentalRepo), new(MockNotificationRepo))

	log := validPickupLog(1, 3)
	log.Photos = log.Photos[:1]

	_, err := svc.Submit(context.Background(), log)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "photos", ve.Field)
}

func TestSubmitConditionLog_MustAcknowledge(t *testing.T) {
	svc := NewConditionLogService(new(MockConditionLogRepo), new(MockRentalRepo), new(MockNotificationRepo))

	log := validPickupLog(1, 3)
	log.Acknowledged = false

	_, err := svc.Submit(context.Background(), log)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "acknowledged", ve.Field)
}

func TestSubmitConditionLog_DamageNeedsDescription(t *testing.T) {
	svc := NewConditionLogService(new(MockConditionLogRepo), new(MockRentalRepo), new(MockNotificationRepo))

	log := validPickupLog(1, 3)
	log.DamageReported = true

	_, err := svc.Submit(context.Background(), log)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "damage_description", ve.Field)

	log.DamageDescription = "dented casing on the left side"
	rentalRepo := new(MockRentalRepo)
	logRepo := new(MockConditionLogRepo)
	noteRepo := new(MockNotificationRepo)
	svc = NewConditionLogService(logRepo, rentalRepo, noteRepo)
	rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.RentalRequest{
		ID: 1, EquipmentID: 10, RenterID: 3, OwnerID: 2, Status: domain.RentalStatusActive,
	}, nil)
	logRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	noteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err = svc.Submit(context.Background(), log)
	assert.NoError(t, err)
}

func TestSubmitConditionLog_VerifierMustBeParty(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := NewConditionLogService(new(MockConditionLogRepo), rentalRepo, new(MockNotificationRepo))

	rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.RentalRequest{
		ID: 1, EquipmentID: 10, RenterID: 3, OwnerID: 2, Status: domain.RentalStatusActive,
	}, nil)

	_, err := svc.Submit(context.Background(), validPickupLog(1, 99))
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "verified_by", ve.Field)
}

// Two submissions for the same rental and type both go through: the store is
// append-only and a correction is a second log.
func TestSubmitConditionLog_AppendOnly(t *testing.T) {
	logRepo := new(MockConditionLogRepo)
	rentalRepo := new(MockRentalRepo)
	noteRepo := new(MockNotificationRepo)
	svc := NewConditionLogService(logRepo, rentalRepo, noteRepo)

	rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.RentalRequest{
		ID: 1, EquipmentID: 10, RenterID: 3, OwnerID: 2, Status: domain.RentalStatusActive,
	}, nil)
	logRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	noteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	first, err := svc.Submit(context.Background(), validPickupLog(1, 3))
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), validPickupLog(1, 3))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	logRepo.AssertNumberOfCalls(t, "Create", 2)
}
