// Package availability decides whether candidate date windows are bookable
// against an equipment's settings and its existing realized bookings. All
// functions are pure: identical input yields identical output, with no side
// effects, regardless of call order.
package availability

import (
	"fmt"
	"time"

	"gearshare-backend/internal/domain"
)

// TotalDays returns the inclusive day count between two calendar days.
// Start 2nd, end 4th is 3 days.
func TotalDays(start, end time.Time) int32 {
	return int32(domain.Day(end).Sub(domain.Day(start)).Hours()/24) + 1
}

// IsBookable reports whether a single calendar day can start or cover a
// booking given the availability settings and existing bookings.
func IsBookable(av *domain.Availability, date time.Time, bookings []domain.RentalRequest, now time.Time) bool {
	if err := checkDate(av, domain.Day(date), bookings, domain.Day(now)); err != nil {
		return false
	}
	for _, b := range bookings {
		if b.ConsumesSlot() && b.Window().Contains(domain.Day(date)) {
			return false
		}
	}
	return true
}

// checkDate applies the per-day settings checks: past date, blocked date,
// availability ranges, and the maintenance buffer after realized bookings.
// Booking overlap itself is reported separately as a date conflict.
func checkDate(av *domain.Availability, date time.Time, bookings []domain.RentalRequest, now time.Time) *domain.AvailabilityError {
	if date.Before(now) {
		return &domain.AvailabilityError{EquipmentID: av.EquipmentID, Reason: domain.ReasonPastDate, Date: date}
	}
	if !av.InAvailableRange(date) {
		return &domain.AvailabilityError{EquipmentID: av.EquipmentID, Reason: domain.ReasonOutOfRange, Date: date}
	}
	if av.IsBlocked(date) {
		return &domain.AvailabilityError{EquipmentID: av.EquipmentID, Reason: domain.ReasonBlockedDate, Date: date}
	}
	if av.BufferDays > 0 {
		for _, b := range bookings {
			if !b.ConsumesSlot() {
				continue
			}
			bufferEnd := domain.AddDays(domain.Day(b.EndDate), av.BufferDays)
			if date.After(domain.Day(b.EndDate)) && !date.After(bufferEnd) {
				return &domain.AvailabilityError{EquipmentID: av.EquipmentID, Reason: domain.ReasonBufferConflict, Date: date}
			}
		}
	}
	return nil
}

// CheckWindow validates every day of the inclusive candidate window. It
// returns an *domain.AvailabilityError for settings rejections and a
// *domain.DateConflictError when the window overlaps a realized booking.
// Duration is a separate concern; see ValidateDuration.
func CheckWindow(av *domain.Availability, start, end time.Time, bookings []domain.RentalRequest, now time.Time) error {
	start, end, now = domain.Day(start), domain.Day(end), domain.Day(now)
	for d := start; !d.After(end); d = domain.AddDays(d, 1) {
		if err := checkDate(av, d, bookings, now); err != nil {
			return err
		}
	}

	window := domain.DateRange{Start: start, End: end}
	var conflicting []int32
	for _, b := range bookings {
		if b.ConsumesSlot() && window.Overlaps(b.Window()) {
			conflicting = append(conflicting, b.ID)
		}
	}
	if len(conflicting) > 0 {
		return &domain.DateConflictError{
			EquipmentID:        av.EquipmentID,
			Start:              start,
			End:                end,
			ConflictingRentals: conflicting,
		}
	}
	return nil
}

// ValidateDuration checks the minimum rental length. Callers must be able to
// tell a too-short window apart from a date rejection, so this never folds
// into CheckWindow.
func ValidateDuration(av *domain.Availability, start, end time.Time) error {
	if domain.Day(end).Before(domain.Day(start)) {
		return &domain.ValidationError{Field: "date_range", Message: "end date precedes start date"}
	}
	if days := TotalDays(start, end); days < av.MinRentalDays {
		return &domain.AvailabilityError{
			EquipmentID: av.EquipmentID,
			Reason:      domain.ReasonBelowMinimumDuration,
			Date:        domain.Day(start),
			Message:     fmt.Sprintf("%d day(s) requested, minimum is %d", days, av.MinRentalDays),
		}
	}
	return nil
}

// ComputeNextAvailable returns the first bookable day once every booking
// currently covering now (and its maintenance buffer) has cleared, or nil
// when no realized booking overlaps now.
func ComputeNextAvailable(av *domain.Availability, bookings []domain.RentalRequest, now time.Time) *time.Time {
	today := domain.Day(now)
	var next *time.Time
	for _, b := range bookings {
		if !b.ConsumesSlot() || !b.Window().Contains(today) {
			continue
		}
		free := domain.AddDays(domain.Day(b.EndDate), av.BufferDays+1)
		if next == nil || free.After(*next) {
			next = &free
		}
	}
	return next
}
