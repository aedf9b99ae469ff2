package models

import "time"

type Building struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255" json:"name"`

	// TotalFloors must always cover every live Floor row of the building.
	// Only the floor lifecycle service may change it, inside a transaction
	// together with the floor rows themselves.
	TotalFloors int `gorm:"column:total_floors;default:0" json:"totalFloors"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
