package entities

import (
	"time"

	"github.com/google/uuid"
)

type Donation struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"` // prepared, produce, bakery, canned, dairy, meat, grain, other
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"` // kg, g, l, ml, units, etc.

	ExpirationDate time.Time `json:"expiration_date"`

	PickupLatitude  *float64 `json:"pickup_latitude,omitempty"`
	PickupLongitude *float64 `json:"pickup_longitude,omitempty"`

	// Estimated savings, nil when the category has no known factor.
	CO2Impact   *float64 `json:"co2_impact,omitempty"`   // kg
	WaterImpact *float64 `json:"water_impact,omitempty"` // liters

	ImageURL string `json:"image_url,omitempty"`

	// Reservation sub-state. The three fields are set and cleared together.
	IsReserved       bool       `gorm:"default:false" json:"is_reserved"`
	ReservedByUserID *uuid.UUID `json:"reserved_by_user_id,omitempty"`
	ReservedAt       *time.Time `json:"reserved_at,omitempty"`

	User           *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ReservedByUser *User `gorm:"foreignKey:ReservedByUserID" json:"reserved_by_user,omitempty"`
	Timestamp
}
