package models

import "time"

const (
	OfficeFree        = "free"
	OfficeOccupied    = "occupied"
	OfficeMaintenance = "maintenance"
)

type Office struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	FloorID uint   `gorm:"column:floor_id;index" json:"floor_id"`
	Code    string `gorm:"column:code;size:50;uniqueIndex" json:"code"`

	// Area is immutable once expense details reference this office; billed
	// amounts would otherwise stop matching the stored rate.
	Area float64 `gorm:"column:area" json:"area"`

	OccupancyState string `gorm:"column:occupancy_state;size:32;default:free" json:"occupancyState"`

	// TenantUserID is set iff the office is occupied.
	TenantUserID *uint `gorm:"column:tenant_user_id;index" json:"tenantUserId,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Floor Floor `gorm:"foreignKey:FloorID;references:ID" json:"floor,omitempty"`
}
