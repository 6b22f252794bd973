package domain

import "time"

type ConditionLogType string

const (
	ConditionLogTypePickup ConditionLogType = "PICKUP"
	ConditionLogTypeReturn ConditionLogType = "RETURN"
)

type PhotoType string

const (
	PhotoTypePickup PhotoType = "PICKUP"
	PhotoTypeReturn PhotoType = "RETURN"
	PhotoTypeDamage PhotoType = "DAMAGE"
)

type ConditionPhoto struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Type      PhotoType `json:"type"`
}

// ConditionLog is the photographic and textual record of equipment state at a
// handoff point. Logs are append-only: a correction is a new log, never an
// update to an existing one.
type ConditionLog struct {
	ID                string             `json:"id"`
	RentalID          int32              `json:"rental_id"`
	EquipmentID       int32              `json:"equipment_id"`
	Type              ConditionLogType   `json:"type"`
	Condition         EquipmentCondition `json:"condition"`
	Notes             string             `json:"notes,omitempty"`
	Photos            []ConditionPhoto   `json:"photos"`
	VerifiedBy        int32              `json:"verified_by"`
	Acknowledged      bool               `json:"acknowledged"`
	DamageReported    bool               `json:"damage_reported"`
	DamageDescription string             `json:"damage_description,omitempty"`
	CreatedOn         time.Time          `json:"created_on"`
}

// MinConditionPhotos is the smallest number of photos a submitted log may carry.
const MinConditionPhotos = 2
