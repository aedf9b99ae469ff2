package models

import (
	"time"

	"gorm.io/datatypes"
)

// ExpensePeriod is one month of common expenses for one building. The unique
// index on (building_id, period) backs the at-most-one-per-month invariant at
// the store, on top of the application-level duplicate check.
type ExpensePeriod struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BuildingID uint   `gorm:"column:building_id;uniqueIndex:idx_building_period" json:"building_id"`
	Period     string `gorm:"column:period;size:7;uniqueIndex:idx_building_period" json:"period"` // "YYYY-MM"

	TotalAmount float64 `gorm:"column:total_amount" json:"totalAmount"`

	// Breakdown holds {utilities, water, maintenance, other} as sent by the
	// caller; stored opaque, never recomputed.
	Breakdown datatypes.JSON `gorm:"column:breakdown" json:"breakdown,omitempty"`

	// RatePerArea keeps full precision; responses round for display.
	RatePerArea float64 `gorm:"column:rate_per_area" json:"ratePerArea"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Details []ExpenseDetail `gorm:"foreignKey:ExpensePeriodID" json:"details,omitempty"`
}

type ExpenseBreakdown struct {
	Utilities   float64 `json:"utilities"`
	Water       float64 `json:"water"`
	Maintenance float64 `json:"maintenance"`
	Other       float64 `json:"other"`
}
