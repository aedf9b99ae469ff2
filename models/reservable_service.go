package models

import "time"

const (
	ServiceRoom       = "room"
	ServiceConsumable = "consumable"
)

// ReservableService is the read-only catalog of shared resources: time-slotted
// meeting rooms and quantity-based consumable services (printing, scanning).
type ReservableService struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:255" json:"name"`
	Type     string  `gorm:"column:type;size:32" json:"type"`
	BaseRate float64 `gorm:"column:base_rate" json:"baseRate"`

	// TimePriced services bill BaseRate per hour of the requested slot when no
	// explicit quantity is given.
	TimePriced bool `gorm:"column:time_priced;default:false" json:"timePriced"`

	CreatedAt time.Time `json:"created_at"`
}
