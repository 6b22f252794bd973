package domain

import "time"

type RentalStatus string

const (
	RentalStatusRequested          RentalStatus = "REQUESTED"
	RentalStatusApproved           RentalStatus = "APPROVED"
	RentalStatusActive             RentalStatus = "ACTIVE"
	RentalStatusCompleted          RentalStatus = "COMPLETED"
	RentalStatusDeclined           RentalStatus = "DECLINED"
	RentalStatusExtensionRequested RentalStatus = "EXTENSION_REQUESTED"
)

// IsTerminal reports whether no further status change is permitted.
func (s RentalStatus) IsTerminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusDeclined
}

type ExtensionStatus string

const (
	ExtensionStatusPending  ExtensionStatus = "PENDING"
	ExtensionStatusApproved ExtensionStatus = "APPROVED"
	ExtensionStatusDeclined ExtensionStatus = "DECLINED"
)

// ExtensionRequest is the single-slot mid-rental negotiation to push the end
// date out. A new request replaces a pending one; it never queues.
type ExtensionRequest struct {
	NewEndDate          time.Time       `json:"new_end_date"`
	AdditionalDays      int32           `json:"additional_days"`
	AdditionalCostCents int32           `json:"additional_cost_cents"`
	Status              ExtensionStatus `json:"status"`
	RequestedOn         time.Time       `json:"requested_on"`
}

// ChecklistItem is one line of the physical handoff checklist filled in by
// whichever party performs the pickup or return.
type ChecklistItem struct {
	Label      string `json:"label"`
	Checked    bool   `json:"checked"`
	Assessment string `json:"assessment,omitempty"`
}

type RentalRequest struct {
	ID          int32     `json:"id"`
	EquipmentID int32     `json:"equipment_id"`
	RenterID    int32     `json:"renter_id"`
	OwnerID     int32     `json:"owner_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalDays   int32     `json:"total_days"`

	// Price snapshot, captured from the equipment at request creation time.
	// Fee fields are immutable once set, except through an approved extension.
	PricePerDayCents int32 `json:"price_per_day_cents"`
	RentalFeeCents   int32 `json:"rental_fee_cents"`
	ServiceFeeCents  int32 `json:"service_fee_cents"`
	TotalPriceCents  int32 `json:"total_price_cents"`

	Status          RentalStatus      `json:"status"`
	OwnerNotes      string            `json:"owner_notes,omitempty"`
	PickupChecklist []ChecklistItem   `json:"pickup_checklist,omitempty"`
	ReturnChecklist []ChecklistItem   `json:"return_checklist,omitempty"`
	Extension       *ExtensionRequest `json:"extension_request,omitempty"`
	CreatedOn       time.Time         `json:"created_on"`
	UpdatedOn       time.Time         `json:"updated_on"`
}

// Window returns the rental's inclusive date range.
func (r *RentalRequest) Window() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// ConsumesSlot reports whether this rental counts against the equipment's
// calendar. A requested or declined rental never consumed a slot.
func (r *RentalRequest) ConsumesSlot() bool {
	switch r.Status {
	case RentalStatusApproved, RentalStatusActive, RentalStatusExtensionRequested:
		return true
	}
	return false
}

// RentalTransition is the audit record written on every status change, so
// disputes can reconstruct who moved a rental and when.
type RentalTransition struct {
	ID        int32        `json:"id"`
	RentalID  int32        `json:"rental_id"`
	From      RentalStatus `json:"from_status"`
	To        RentalStatus `json:"to_status"`
	ActorID   int32        `json:"actor_id"`
	Note      string       `json:"note,omitempty"`
	CreatedOn time.Time    `json:"created_on"`
}
