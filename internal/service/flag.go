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

type flagService struct {
	flagRepo   repository.FlagRepository
	rentalRepo repository.RentalRepository
	noteRepo   repository.NotificationRepository
	now        func() time.Time
}

func NewFlagService(
	flagRepo repository.FlagRepository,
	rentalRepo repository.RentalRepository,
	noteRepo repository.NotificationRepository,
) FlagService {
	return &flagService{
		flagRepo:   flagRepo,
		rentalRepo: rentalRepo,
		noteRepo:   noteRepo,
		now:        time.Now,
	}
}

// Raise records a new problem report against an approved or active rental.
// Severity defaults from the category table and may be overridden by the
// caller; it never gates a rental state transition.
func (s *flagService) Raise(ctx context.Context, flag *domain.TaskFlag) (string, error) {
	defaultSev, ok := domain.DefaultSeverity(flag.Category)
	if !ok {
		return "", &domain.ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", flag.Category)}
	}
	if flag.Severity == "" {
		flag.Severity = defaultSev
	} else if !domain.ValidSeverity(flag.Severity) {
		return "", &domain.ValidationError{Field: "severity", Message: fmt.Sprintf("unknown severity %q", flag.Severity)}
	}
	if flag.SelectedIssue == "" {
		return "", &domain.ValidationError{Field: "selected_issue", Message: "required"}
	}

	rt, err := s.rentalRepo.GetByID(ctx, flag.RentalID)
	if err != nil {
		return "", err
	}
	if flag.CreatedBy != rt.RenterID && flag.CreatedBy != rt.OwnerID {
		return "", &domain.ValidationError{Field: "created_by", Message: "must be the renter or the owner"}
	}
	if rt.Status != domain.RentalStatusApproved && !isActive(rt.Status) {
		return "", &domain.ValidationError{Field: "rental_id", Message: "flags can only be raised on approved or active rentals"}
	}

	flag.ID = uuid.New().String()
	flag.Status = domain.FlagStatusOpen
	if err := s.flagRepo.Create(ctx, flag); err != nil {
		return "", err
	}

	// Both parties must see the flag; notify whoever didn't raise it.
	counterpart := rt.RenterID
	if flag.CreatedBy == rt.RenterID {
		counterpart = rt.OwnerID
	}
	note := &domain.Notification{
		UserID:  counterpart,
		Title:   "Issue Flagged",
		Message: fmt.Sprintf("Rental %d: %s (%s)", rt.ID, flag.SelectedIssue, flag.Severity),
		Attributes: map[string]string{
			"rental_id": fmt.Sprintf("%d", rt.ID),
			"flag_id":   flag.ID,
			"severity":  string(flag.Severity),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create flag notification", "rental_id", rt.ID, "error", err)
	}

	return flag.ID, nil
}

// Acknowledge moves an open flag forward. Acknowledging twice is a no-op;
// acknowledging a resolved flag is rejected because resolved flags are
// immutable.
func (s *flagService) Acknowledge(ctx context.Context, flagID string, actorID int32) error {
	flag, err := s.flagRepo.GetByID(ctx, flagID)
	if err != nil {
		return err
	}
	switch flag.Status {
	case domain.FlagStatusResolved:
		return domain.ErrFlagResolved
	case domain.FlagStatusAcknowledged:
		return nil
	}

	now := s.now()
	flag.Status = domain.FlagStatusAcknowledged
	flag.AcknowledgedOn = &now
	return s.flagRepo.Update(ctx, flag)
}

// Resolve is idempotent-safe: resolving an already-resolved flag succeeds
// without touching it, so two coordinators racing on the same flag cannot
// fail each other.
func (s *flagService) Resolve(ctx context.Context, flagID string, actorID int32, note string) error {
	flag, err := s.flagRepo.GetByID(ctx, flagID)
	if err != nil {
		return err
	}
	if flag.Status == domain.FlagStatusResolved {
		return nil
	}

	now := s.now()
	flag.Status = domain.FlagStatusResolved
	flag.ResolvedAt = &now
	flag.ResolvedBy = &actorID
	flag.ResolutionNote = note
	return s.flagRepo.Update(ctx, flag)
}

func (s *flagService) ListOpen(ctx context.Context, rentalID int32) ([]domain.TaskFlag, error) {
	return s.flagRepo.ListOpenByRental(ctx, rentalID)
}

func (s *flagService) ListAll(ctx context.Context, rentalID int32) ([]domain.TaskFlag, error) {
	return s.flagRepo.ListByRental(ctx, rentalID)
}

func (s *flagService) HasCriticalOpenFlag(ctx context.Context, rentalID int32) (bool, error) {
	return s.flagRepo.HasCriticalOpen(ctx, rentalID)
}
