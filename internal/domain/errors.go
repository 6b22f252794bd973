package domain

import (
	"errors"
	"fmt"
	"time"
)

// AvailabilityReason tells the caller why a candidate window was rejected, so
// the UI can explain the failure rather than just report it.
type AvailabilityReason string

const (
	ReasonPastDate             AvailabilityReason = "past_date"
	ReasonBlockedDate          AvailabilityReason = "blocked_date"
	ReasonOutOfRange           AvailabilityReason = "out_of_range"
	ReasonBelowMinimumDuration AvailabilityReason = "below_minimum_duration"
	ReasonBufferConflict       AvailabilityReason = "buffer_conflict"
)

// AvailabilityError rejects a requested window against the equipment's
// availability settings. Expected and frequent; never treated as exceptional.
type AvailabilityError struct {
	EquipmentID int32
	Reason      AvailabilityReason
	Date        time.Time
	Message     string
}

func (e *AvailabilityError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("equipment %d not bookable (%s): %s", e.EquipmentID, e.Reason, e.Message)
	}
	return fmt.Sprintf("equipment %d not bookable on %s (%s)", e.EquipmentID, FormatDate(e.Date), e.Reason)
}

// DateConflictError means a concurrent approval raced and lost: another
// approved or active rental already holds an overlapping window.
type DateConflictError struct {
	EquipmentID        int32
	Start, End         time.Time
	ConflictingRentals []int32
}

func (e *DateConflictError) Error() string {
	return fmt.Sprintf("equipment %d already booked within %s..%s",
		e.EquipmentID, FormatDate(e.Start), FormatDate(e.End))
}

// ValidationError rejects a malformed condition log or flag payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IllegalTransitionError rejects a status change not permitted from the
// rental's current state.
type IllegalTransitionError struct {
	RentalID int32
	From     RentalStatus
	To       RentalStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("rental %d: cannot move from %s to %s", e.RentalID, e.From, e.To)
}

var (
	// ErrNotFound is returned by repositories when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrFlagResolved rejects mutation of an already-resolved flag.
	ErrFlagResolved = errors.New("flag is resolved and immutable")
	// ErrNoPendingExtension rejects a resolution with nothing to resolve.
	ErrNoPendingExtension = errors.New("rental has no pending extension request")
	// ErrReturnLogRequired blocks completion when policy demands a return
	// condition log and none was submitted.
	ErrReturnLogRequired = errors.New("return condition log required before completion")
)

// IsAvailability reports whether err is an AvailabilityError.
func IsAvailability(err error) bool {
	var ae *AvailabilityError
	return errors.As(err, &ae)
}

// IsDateConflict reports whether err is a DateConflictError.
func IsDateConflict(err error) bool {
	var de *DateConflictError
	return errors.As(err, &de)
}
