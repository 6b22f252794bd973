package domain

import "time"

type FlagCategory string

const (
	FlagCategoryEquipmentIssue      FlagCategory = "EQUIPMENT_ISSUE"
	FlagCategoryScheduleConflict    FlagCategory = "SCHEDULE_CONFLICT"
	FlagCategoryAccessProblem       FlagCategory = "ACCESS_PROBLEM"
	FlagCategoryDocumentationNeeded FlagCategory = "DOCUMENTATION_NEEDED"
	FlagCategorySafetyConcern       FlagCategory = "SAFETY_CONCERN"
	FlagCategoryPaymentIssue        FlagCategory = "PAYMENT_ISSUE"
	FlagCategoryCommunicationNeeded FlagCategory = "COMMUNICATION_NEEDED"
	FlagCategoryOther               FlagCategory = "OTHER"
)

type FlagSeverity string

const (
	FlagSeverityLow      FlagSeverity = "LOW"
	FlagSeverityMedium   FlagSeverity = "MEDIUM"
	FlagSeverityHigh     FlagSeverity = "HIGH"
	FlagSeverityCritical FlagSeverity = "CRITICAL"
)

// defaultSeverities is the closed category table. A category missing here is
// not a valid category.
var defaultSeverities = map[FlagCategory]FlagSeverity{
	FlagCategoryEquipmentIssue:      FlagSeverityHigh,
	FlagCategoryScheduleConflict:    FlagSeverityMedium,
	FlagCategoryAccessProblem:       FlagSeverityMedium,
	FlagCategoryDocumentationNeeded: FlagSeverityLow,
	FlagCategorySafetyConcern:       FlagSeverityCritical,
	FlagCategoryPaymentIssue:        FlagSeverityHigh,
	FlagCategoryCommunicationNeeded: FlagSeverityLow,
	FlagCategoryOther:               FlagSeverityLow,
}

// DefaultSeverity returns the category's default severity. The second return
// value is false for unknown categories.
func DefaultSeverity(c FlagCategory) (FlagSeverity, bool) {
	s, ok := defaultSeverities[c]
	return s, ok
}

// ValidSeverity reports whether s is one of the four known levels.
func ValidSeverity(s FlagSeverity) bool {
	switch s {
	case FlagSeverityLow, FlagSeverityMedium, FlagSeverityHigh, FlagSeverityCritical:
		return true
	}
	return false
}

type FlagStatus string

const (
	FlagStatusOpen         FlagStatus = "OPEN"
	FlagStatusAcknowledged FlagStatus = "ACKNOWLEDGED"
	FlagStatusResolved     FlagStatus = "RESOLVED"
)

// TaskFlag is a structured report of an in-progress problem with a rental.
// Severity is informational only and never gates a rental state transition.
// Lifecycle is monotonic: OPEN -> ACKNOWLEDGED -> RESOLVED, where ACKNOWLEDGED
// may be skipped. A resolved flag is immutable.
type TaskFlag struct {
	ID                string       `json:"id"`
	RentalID          int32        `json:"rental_id"`
	Category          FlagCategory `json:"category"`
	Severity          FlagSeverity `json:"severity"`
	SelectedIssue     string       `json:"selected_issue"`
	AdditionalContext string       `json:"additional_context,omitempty"`
	Status            FlagStatus   `json:"status"`
	CreatedBy         int32        `json:"created_by"`
	CreatedOn         time.Time    `json:"created_on"`
	AcknowledgedOn    *time.Time   `json:"acknowledged_on,omitempty"`
	ResolvedAt        *time.Time   `json:"resolved_at,omitempty"`
	ResolvedBy        *int32       `json:"resolved_by,omitempty"`
	ResolutionNote    string       `json:"resolution_note,omitempty"`
}
