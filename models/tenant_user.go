package models

import "time"

// TenantUser is the authenticated principal behind booking requests. Login and
// token issuance live outside this service; requests arrive with the id only.
type TenantUser struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"column:full_name;size:255" json:"fullName"`
	Email    string `gorm:"size:150" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
