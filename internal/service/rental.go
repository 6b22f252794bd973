package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gearshare-backend/internal/availability"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"
)

// legalTransitions is the rental state machine. COMPLETED and DECLINED are
// terminal. EXTENSION_REQUESTED is an active-equivalent marker kept for rows
// written by older clients; new code leaves the rental ACTIVE while an
// extension is pending.
var legalTransitions = map[domain.RentalStatus][]domain.RentalStatus{
	domain.RentalStatusRequested:          {domain.RentalStatusApproved, domain.RentalStatusDeclined},
	domain.RentalStatusApproved:           {domain.RentalStatusActive},
	domain.RentalStatusActive:             {domain.RentalStatusCompleted},
	domain.RentalStatusExtensionRequested: {domain.RentalStatusCompleted},
}

func canTransition(from, to domain.RentalStatus) bool {
	for _, t := range legalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func isActive(s domain.RentalStatus) bool {
	return s == domain.RentalStatusActive || s == domain.RentalStatusExtensionRequested
}

type rentalService struct {
	rentalRepo     repository.RentalRepository
	equipmentRepo  repository.EquipmentRepository
	transitionRepo repository.TransitionRepository
	logRepo        repository.ConditionLogRepository
	noteRepo       repository.NotificationRepository
	locks          *equipmentLocks
	serviceFeeRate float64
	// requireReturnLog hard-blocks CompleteReturn until a RETURN condition
	// log exists. Deployment policy, off by default.
	requireReturnLog bool
	now              func() time.Time
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	equipmentRepo repository.EquipmentRepository,
	transitionRepo repository.TransitionRepository,
	logRepo repository.ConditionLogRepository,
	noteRepo repository.NotificationRepository,
	serviceFeeRate float64,
	requireReturnLog bool,
) RentalService {
	return &rentalService{
		rentalRepo:       rentalRepo,
		equipmentRepo:    equipmentRepo,
		transitionRepo:   transitionRepo,
		logRepo:          logRepo,
		noteRepo:         noteRepo,
		locks:            newEquipmentLocks(),
		serviceFeeRate:   serviceFeeRate,
		requireReturnLog: requireReturnLog,
		now:              time.Now,
	}
}

func (s *rentalService) CreateRentalRequest(ctx context.Context, equipmentID, renterID int32, startDateStr, endDateStr string) (*domain.RentalRequest, error) {
	start, err := domain.ParseDate(startDateStr)
	if err != nil {
		return nil, &domain.ValidationError{Field: "start_date", Message: err.Error()}
	}
	end, err := domain.ParseDate(endDateStr)
	if err != nil {
		return nil, &domain.ValidationError{Field: "end_date", Message: err.Error()}
	}

	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq.OwnerID == renterID {
		return nil, &domain.ValidationError{Field: "renter_id", Message: "owners cannot rent their own equipment"}
	}

	av, err := s.equipmentRepo.GetAvailability(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	// Duration and date availability fail with distinct errors so callers can
	// tell a too-short window apart from an unavailable one.
	if err := availability.ValidateDuration(av, start, end); err != nil {
		return nil, err
	}
	if err := s.checkWindow(ctx, av, start, end, 0); err != nil {
		return nil, err
	}

	days := availability.TotalDays(start, end)
	rentalFee, serviceFee := s.fees(eq.PricePerDayCents, days)

	rt := &domain.RentalRequest{
		EquipmentID:      equipmentID,
		RenterID:         renterID,
		OwnerID:          eq.OwnerID,
		StartDate:        domain.Day(start),
		EndDate:          domain.Day(end),
		TotalDays:        days,
		PricePerDayCents: eq.PricePerDayCents,
		RentalFeeCents:   rentalFee,
		ServiceFeeCents:  serviceFee,
		TotalPriceCents:  rentalFee + serviceFee,
		Status:           domain.RentalStatusRequested,
	}
	if err := s.rentalRepo.Create(ctx, rt); err != nil {
		return nil, err
	}

	s.recordTransition(ctx, rt, "", domain.RentalStatusRequested, renterID, "request created")
	s.notify(ctx, rt.OwnerID, "New Rental Request",
		fmt.Sprintf("New request for %s, %s to %s", eq.Name, domain.FormatDate(start), domain.FormatDate(end)), rt)

	return rt, nil
}

// Approve re-validates availability at approval time, not only at request
// time: the window between request and approval is unbounded and other
// approvals may have intervened. The check and the status write are serialized
// per equipment so two overlapping approvals cannot both succeed.
func (s *rentalService) Approve(ctx context.Context, rentalID, actorID int32, notes string) (*domain.RentalRequest, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != actorID {
		return nil, errors.New("unauthorized")
	}

	unlock := s.locks.Lock(rt.EquipmentID)
	defer unlock()

	// Re-read under the lock; a racing approval may have just moved it.
	rt, err = s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !canTransition(rt.Status, domain.RentalStatusApproved) {
		return nil, &domain.IllegalTransitionError{RentalID: rt.ID, From: rt.Status, To: domain.RentalStatusApproved}
	}

	av, err := s.equipmentRepo.GetAvailability(ctx, rt.EquipmentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWindow(ctx, av, rt.StartDate, rt.EndDate, rt.ID); err != nil {
		return nil, err
	}

	prev := rt.Status
	rt.Status = domain.RentalStatusApproved
	rt.OwnerNotes = notes
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	s.recordTransition(ctx, rt, prev, rt.Status, actorID, notes)
	s.notify(ctx, rt.RenterID, "Rental Approved",
		fmt.Sprintf("Your rental request %d was approved", rt.ID), rt)
	return rt, nil
}

// Decline carries no side effects on availability: a declined rental never
// consumed a slot.
func (s *rentalService) Decline(ctx context.Context, rentalID, actorID int32) (*domain.RentalRequest, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != actorID {
		return nil, errors.New("unauthorized")
	}
	if !canTransition(rt.Status, domain.RentalStatusDeclined) {
		return nil, &domain.IllegalTransitionError{RentalID: rt.ID, From: rt.Status, To: domain.RentalStatusDeclined}
	}

	prev := rt.Status
	rt.Status = domain.RentalStatusDeclined
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	s.recordTransition(ctx, rt, prev, rt.Status, actorID, "")
	s.notify(ctx, rt.RenterID, "Rental Declined",
		fmt.Sprintf("Your rental request %d was declined", rt.ID), rt)
	return rt, nil
}

// BeginPickup moves an approved rental to ACTIVE. The pickup checklist may lag
// the handoff; an empty checklist is accepted.
func (s *rentalService) BeginPickup(ctx context.Context, rentalID, actorID int32, checklist []domain.ChecklistItem) (*domain.RentalRequest, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != actorID && rt.OwnerID != actorID {
		return nil, errors.New("unauthorized")
	}
	if !canTransition(rt.Status, domain.RentalStatusActive) {
		return nil, &domain.IllegalTransitionError{RentalID: rt.ID, From: rt.Status, To: domain.RentalStatusActive}
	}

	prev := rt.Status
	rt.Status = domain.RentalStatusActive
	rt.PickupChecklist = checklist
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	s.recordTransition(ctx, rt, prev, rt.Status, actorID, "pickup")
	s.notify(ctx, s.counterpart(rt, actorID), "Rental Started",
		fmt.Sprintf("Rental %d is now active", rt.ID), rt)
	return rt, nil
}

func (s *rentalService) CompleteReturn(ctx context.Context, rentalID, actorID int32, checklist []domain.ChecklistItem) (*domain.RentalRequest, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != actorID && rt.OwnerID != actorID {
		return nil, errors.New("unauthorized")
	}
	if !canTransition(rt.Status, domain.RentalStatusCompleted) {
		return nil, &domain.IllegalTransitionError{RentalID: rt.ID, From: rt.Status, To: domain.RentalStatusCompleted}
	}

	if s.requireReturnLog {
		has, err := s.logRepo.HasType(ctx, rt.ID, domain.ConditionLogTypeReturn)
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, domain.ErrReturnLogRequired
		}
	}

	prev := rt.Status
	rt.Status = domain.RentalStatusCompleted
	rt.ReturnChecklist = checklist
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	s.recordTransition(ctx, rt, prev, rt.Status, actorID, "return")
	s.notify(ctx, s.counterpart(rt, actorID), "Rental Completed",
		fmt.Sprintf("Rental %d was returned and completed", rt.ID), rt)
	return rt, nil
}

// RequestExtension appends a negotiated lengthening to an active rental. The
// extended window is functionally a second booking glued to the first and is
// subject to the same conflict rules. A new request replaces a pending one.
func (s *rentalService) RequestExtension(ctx context.Context, rentalID, actorID int32, newEndDateStr string) (*domain.ExtensionRequest, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != actorID {
		return nil, errors.New("unauthorized")
	}
	if !isActive(rt.Status) {
		return nil, &domain.IllegalTransitionError{RentalID: rt.ID, From: rt.Status, To: rt.Status}
	}

	newEnd, err := domain.ParseDate(newEndDateStr)
	if err != nil {
		return nil, &domain.ValidationError{Field: "new_end_date", Message: err.Error()}
	}
	newEnd = domain.Day(newEnd)
	if !newEnd.After(rt.EndDate) {
		return nil, &domain.ValidationError{Field: "new_end_date", Message: "must be after the current end date"}
	}
	additionalDays := availability.TotalDays(rt.EndDate, newEnd) - 1

	av, err := s.equipmentRepo.GetAvailability(ctx, rt.EquipmentID)
	if err != nil {
		return nil, err
	}
	extStart := domain.AddDays(rt.EndDate, 1)
	if err := s.checkWindow(ctx, av, extStart, newEnd, rt.ID); err != nil {
		return nil, err
	}

	addFee := additionalDays * rt.PricePerDayCents
	addService := int32(math.Round(float64(addFee) * s.serviceFeeRate))

	rt.Extension = &domain.ExtensionRequest{
		NewEndDate:          newEnd,
		AdditionalDays:      additionalDays,
		AdditionalCostCents: addFee + addService,
		Status:              domain.ExtensionStatusPending,
		RequestedOn:         s.now(),
	}
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	s.notify(ctx, rt.OwnerID, "Extension Requested",
		fmt.Sprintf("Rental %d: extension to %s requested", rt.ID, domain.FormatDate(newEnd)), rt)
	return rt.Extension, nil
}

// ResolveExtension settles the pending extension. Approval re-checks the
// extended window under the per-equipment lock; a decline touches nothing but
// the nested status. The rental's own status stays ACTIVE either way.
func (s *rentalService) ResolveExtension(ctx context.Context, rentalID, actorID int32, approve bool) (*domain.RentalRequest, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != actorID {
		return nil, errors.New("unauthorized")
	}

	unlock := s.locks.Lock(rt.EquipmentID)
	defer unlock()

	rt, err = s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Extension == nil || rt.Extension.Status != domain.ExtensionStatusPending {
		return nil, domain.ErrNoPendingExtension
	}

	if !approve {
		rt.Extension.Status = domain.ExtensionStatusDeclined
		if err := s.rentalRepo.Update(ctx, rt); err != nil {
			return nil, err
		}
		s.notify(ctx, rt.RenterID, "Extension Declined",
			fmt.Sprintf("Rental %d: extension request was declined", rt.ID), rt)
		return rt, nil
	}

	av, err := s.equipmentRepo.GetAvailability(ctx, rt.EquipmentID)
	if err != nil {
		return nil, err
	}
	extStart := domain.AddDays(rt.EndDate, 1)
	if err := s.checkWindow(ctx, av, extStart, rt.Extension.NewEndDate, rt.ID); err != nil {
		return nil, err
	}

	addFee := rt.Extension.AdditionalDays * rt.PricePerDayCents
	addService := rt.Extension.AdditionalCostCents - addFee

	rt.EndDate = rt.Extension.NewEndDate
	rt.TotalDays += rt.Extension.AdditionalDays
	rt.RentalFeeCents += addFee
	rt.ServiceFeeCents += addService
	rt.TotalPriceCents += rt.Extension.AdditionalCostCents
	rt.Extension.Status = domain.ExtensionStatusApproved
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	s.notify(ctx, rt.RenterID, "Extension Approved",
		fmt.Sprintf("Rental %d extended to %s", rt.ID, domain.FormatDate(rt.EndDate)), rt)
	return rt, nil
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID int32) (*domain.RentalRequest, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != userID && rt.OwnerID != userID {
		return nil, errors.New("unauthorized")
	}
	return rt, nil
}

func (s *rentalService) ListRentals(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	return s.rentalRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *rentalService) ListLendings(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	return s.rentalRepo.ListByOwner(ctx, ownerID, status, page, pageSize)
}

func (s *rentalService) ListTransitions(ctx context.Context, userID, rentalID int32) ([]domain.RentalTransition, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != userID && rt.OwnerID != userID {
		return nil, errors.New("unauthorized")
	}
	return s.transitionRepo.ListByRental(ctx, rentalID)
}

func (s *rentalService) NextAvailable(ctx context.Context, equipmentID int32) (*time.Time, error) {
	av, err := s.equipmentRepo.GetAvailability(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	horizon := domain.AddDays(domain.Day(now), 366)
	bookings, err := s.rentalRepo.ListRealizedByEquipment(ctx, equipmentID, domain.Day(now), horizon)
	if err != nil {
		return nil, err
	}
	return availability.ComputeNextAvailable(av, bookings, now), nil
}

// checkWindow validates a candidate window against settings and realized
// bookings. excludeRentalID skips the rental's own window (used when
// re-checking extensions).
func (s *rentalService) checkWindow(ctx context.Context, av *domain.Availability, start, end time.Time, excludeRentalID int32) error {
	// Bookings ending shortly before the window still matter through the
	// maintenance buffer, so the fetch reaches back by BufferDays.
	from := domain.AddDays(domain.Day(start), -av.BufferDays)
	bookings, err := s.rentalRepo.ListRealizedByEquipment(ctx, av.EquipmentID, from, domain.Day(end))
	if err != nil {
		return err
	}
	if excludeRentalID != 0 {
		filtered := bookings[:0]
		for _, b := range bookings {
			if b.ID != excludeRentalID {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}
	return availability.CheckWindow(av, start, end, bookings, s.now())
}

func (s *rentalService) fees(pricePerDayCents, days int32) (rentalFee, serviceFee int32) {
	rentalFee = pricePerDayCents * days
	serviceFee = int32(math.Round(float64(rentalFee) * s.serviceFeeRate))
	return rentalFee, serviceFee
}

func (s *rentalService) counterpart(rt *domain.RentalRequest, actorID int32) int32 {
	if actorID == rt.RenterID {
		return rt.OwnerID
	}
	return rt.RenterID
}

// recordTransition and notify are best-effort side effects: a failed audit or
// notification write is logged but never fails the transition itself.
func (s *rentalService) recordTransition(ctx context.Context, rt *domain.RentalRequest, from, to domain.RentalStatus, actorID int32, note string) {
	tr := &domain.RentalTransition{
		RentalID: rt.ID,
		From:     from,
		To:       to,
		ActorID:  actorID,
		Note:     note,
	}
	if err := s.transitionRepo.Create(ctx, tr); err != nil {
		logger.Error("Failed to record rental transition", "rental_id", rt.ID, "to", to, "error", err)
	}
}

func (s *rentalService) notify(ctx context.Context, userID int32, title, message string, rt *domain.RentalRequest) {
	note := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"rental_id": fmt.Sprintf("%d", rt.ID),
			"status":    string(rt.Status),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create notification", "user_id", userID, "rental_id", rt.ID, "error", err)
	}
}
