package jobs

import (
	"context"
	"fmt"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
)

// DeclineStaleRequests declines REQUESTED rentals that have sat unactioned
// longer than the configured window. The decline itself goes through the
// normal status write plus audit row, attributed to the system actor.
func (jr *JobRunner) DeclineStaleRequests() {
	jr.runWithRecovery("DeclineStaleRequests", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -jr.config.Policy.StaleRequestDays)

		stale, err := jr.store.RentalRepository.ListStaleRequested(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale rental requests", "error", err)
			return
		}

		count := 0
		for i := range stale {
			rt := &stale[i]
			prev := rt.Status
			rt.Status = domain.RentalStatusDeclined
			if err := jr.store.RentalRepository.Update(ctx, rt); err != nil {
				logger.Error("Failed to decline stale rental", "rental_id", rt.ID, "error", err)
				continue
			}

			tr := &domain.RentalTransition{
				RentalID: rt.ID,
				From:     prev,
				To:       domain.RentalStatusDeclined,
				ActorID:  0, // system actor
				Note:     fmt.Sprintf("auto-declined after %d days unactioned", jr.config.Policy.StaleRequestDays),
			}
			if err := jr.store.TransitionRepository.Create(ctx, tr); err != nil {
				logger.Error("Failed to record auto-decline transition", "rental_id", rt.ID, "error", err)
			}

			note := &domain.Notification{
				UserID:  rt.RenterID,
				Title:   "Rental Request Expired",
				Message: fmt.Sprintf("Your rental request %d expired without a response", rt.ID),
				Attributes: map[string]string{
					"rental_id": fmt.Sprintf("%d", rt.ID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to notify renter of auto-decline", "rental_id", rt.ID, "error", err)
			}
			count++
		}
		logger.Info("Declined stale rental requests", "count", count)
	})
}

// SendReturnReminders notifies renters whose active rentals end tomorrow.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		tomorrow := domain.AddDays(domain.Day(time.Now()), 1)

		ending, err := jr.store.RentalRepository.ListEndingOn(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list rentals ending tomorrow", "error", err)
			return
		}

		for i := range ending {
			rt := &ending[i]
			note := &domain.Notification{
				UserID:  rt.RenterID,
				Title:   "Return Due Tomorrow",
				Message: fmt.Sprintf("Rental %d is due back on %s", rt.ID, domain.FormatDate(rt.EndDate)),
				Attributes: map[string]string{
					"rental_id": fmt.Sprintf("%d", rt.ID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to send return reminder", "rental_id", rt.ID, "error", err)
			}
		}
		logger.Info("Sent return reminders", "count", len(ending))
	})
}
