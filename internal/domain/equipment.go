package domain

import "time"

type EquipmentStatus string

const (
	EquipmentStatusListed   EquipmentStatus = "LISTED"
	EquipmentStatusUnlisted EquipmentStatus = "UNLISTED"
)

type EquipmentCondition string

const (
	EquipmentConditionExcellent  EquipmentCondition = "EXCELLENT"
	EquipmentConditionGood       EquipmentCondition = "GOOD"
	EquipmentConditionAcceptable EquipmentCondition = "ACCEPTABLE"
	EquipmentConditionDamaged    EquipmentCondition = "DAMAGED/NEEDS_REPAIR"
)

type Equipment struct {
	ID                   int32              `json:"id"`
	OwnerID              int32              `json:"owner_id"`
	Name                 string             `json:"name"`
	Description          string             `json:"description"`
	Categories           []string           `json:"categories"`
	PricePerDayCents     int32              `json:"price_per_day_cents"`
	ReplacementCostCents int32              `json:"replacement_cost_cents"`
	Condition            EquipmentCondition `json:"condition"`
	Metro                string             `json:"metro"`
	Status               EquipmentStatus    `json:"status"`
	CreatedOn            string             `json:"created_on"`
}

// DateRange is an inclusive calendar window. Start and End are UTC midnights.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the day falls inside the range, ends included.
func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Overlaps reports whether the two inclusive ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Availability is an equipment's booking settings: owner-curated blocked
// dates, optional seasonal availability ranges, the minimum rental length,
// and the maintenance buffer enforced after each realized booking.
type Availability struct {
	EquipmentID int32 `json:"equipment_id"`
	// BlockedDates are individual days the owner has made unbookable.
	BlockedDates []time.Time `json:"blocked_dates,omitempty"`
	// AvailableRanges, when non-empty, restrict bookings to the listed
	// windows. Empty means the whole calendar is in range.
	AvailableRanges []DateRange `json:"available_ranges,omitempty"`
	MinRentalDays   int32       `json:"min_rental_days"`
	BufferDays      int32       `json:"buffer_days"`
}

// IsBlocked reports whether the day is owner-blocked.
func (a *Availability) IsBlocked(day time.Time) bool {
	for _, d := range a.BlockedDates {
		if SameDay(d, day) {
			return true
		}
	}
	return false
}

// InAvailableRange reports whether the day falls in at least one available
// range. With no ranges configured every day is in range.
func (a *Availability) InAvailableRange(day time.Time) bool {
	if len(a.AvailableRanges) == 0 {
		return true
	}
	for _, r := range a.AvailableRanges {
		if r.Contains(day) {
			return true
		}
	}
	return false
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a yyyy-mm-dd string into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a time as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates a time to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two times fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// AddDays shifts a day by n calendar days.
func AddDays(t time.Time, n int32) time.Time {
	return Day(t).AddDate(0, 0, int(n))
}
