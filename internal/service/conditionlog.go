package service

import (
	"context"
	"fmt"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"

	"github.com/google/uuid"
)

type conditionLogService struct {
	logRepo    repository.ConditionLogRepository
	rentalRepo repository.RentalRepository
	noteRepo   repository.NotificationRepository
	now        func() time.Time
}

func NewConditionLogService(
	logRepo repository.ConditionLogRepository,
	rentalRepo repository.RentalRepository,
	noteRepo repository.NotificationRepository,
) ConditionLogService {
	return &conditionLogService{
		logRepo:    logRepo,
		rentalRepo: rentalRepo,
		noteRepo:   noteRepo,
		now:        time.Now,
	}
}

// Submit validates and appends a condition log. Logs are immutable once
// submitted; a correction is a second log for the same rental and type, never
// an overwrite.
func (s *conditionLogService) Submit(ctx context.Context, log *domain.ConditionLog) (string, error) {
	if log.Type != domain.ConditionLogTypePickup && log.Type != domain.ConditionLogTypeReturn {
		return "", &domain.ValidationError{Field: "type", Message: fmt.Sprintf("unknown log type %q", log.Type)}
	}
	if len(log.Photos) < domain.MinConditionPhotos {
		return "", &domain.ValidationError{
			Field:   "photos",
			Message: fmt.Sprintf("at least %d photos required, got %d", domain.MinConditionPhotos, len(log.Photos)),
		}
	}
	if !log.Acknowledged {
		return "", &domain.ValidationError{Field: "acknowledged", Message: "submitter must acknowledge the recorded condition"}
	}
	if log.DamageReported && log.DamageDescription == "" {
		return "", &domain.ValidationError{Field: "damage_description", Message: "required when damage is reported"}
	}

	rt, err := s.rentalRepo.GetByID(ctx, log.RentalID)
	if err != nil {
		return "", err
	}
	if log.VerifiedBy != rt.RenterID && log.VerifiedBy != rt.OwnerID {
		return "", &domain.ValidationError{Field: "verified_by", Message: "must be the renter or the owner"}
	}

	log.ID = uuid.New().String()
	log.EquipmentID = rt.EquipmentID
	for i := range log.Photos {
		if log.Photos[i].ID == "" {
			log.Photos[i].ID = uuid.New().String()
		}
		if log.Photos[i].Timestamp.IsZero() {
			log.Photos[i].Timestamp = s.now()
		}
	}

	if err := s.logRepo.Create(ctx, log); err != nil {
		return "", err
	}

	counterpart := rt.RenterID
	if log.VerifiedBy == rt.RenterID {
		counterpart = rt.OwnerID
	}
	note := &domain.Notification{
		UserID:  counterpart,
		Title:   "Condition Documented",
		Message: fmt.Sprintf("A %s condition log was submitted for rental %d", log.Type, rt.ID),
		Attributes: map[string]string{
			"rental_id": fmt.Sprintf("%d", rt.ID),
			"log_id":    log.ID,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create condition log notification", "rental_id", rt.ID, "error", err)
	}

	return log.ID, nil
}

func (s *conditionLogService) ListForRental(ctx context.Context, rentalID int32) ([]domain.ConditionLog, error) {
	return s.logRepo.ListByRental(ctx, rentalID)
}

func (s *conditionLogService) HasType(ctx context.Context, rentalID int32, logType domain.ConditionLogType) (bool, error) {
	return s.logRepo.HasType(ctx, rentalID, logType)
}
