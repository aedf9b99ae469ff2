package models

import "time"

// Floor numbers are dense per building (1..TotalFloors, no gaps at the top):
// floors are created in batches and removed only from the top number downward.
type Floor struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	BuildingID  uint `gorm:"column:building_id;index;uniqueIndex:idx_building_floor_number" json:"building_id"`
	FloorNumber int  `gorm:"column:floor_number;uniqueIndex:idx_building_floor_number" json:"floorNumber"`

	GrossArea     float64 `gorm:"column:gross_area" json:"grossArea"`
	CommonAreaPct float64 `gorm:"column:common_area_pct" json:"commonAreaPct"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Building Building `gorm:"foreignKey:BuildingID;references:ID" json:"building,omitempty"`
}

// UsableArea is derived, never stored.
func (f Floor) UsableArea() float64 {
	return f.GrossArea * (1 - f.CommonAreaPct)
}
