package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// CanTransition is the whole lifecycle: pending may complete or cancel,
// completed and cancelled are terminal.
func CanTransition(from, to string) bool {
	if from != BookingPending {
		return false
	}
	return to == BookingCompleted || to == BookingCancelled
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code,omitempty"`
	TenantUserID  uint   `gorm:"column:tenant_user_id;index" json:"tenant_user_id"`
	ServiceID     uint   `gorm:"column:service_id;index" json:"service_id"`

	Date time.Time `gorm:"column:date;type:date;index" json:"date"`

	// StartTime/EndTime are zero-padded "HH:MM" strings; empty for consumable
	// bookings. Lexicographic order matches clock order, which the overlap
	// query and the sweep rely on.
	StartTime string `gorm:"column:start_time;size:5" json:"startTime,omitempty"`
	EndTime   string `gorm:"column:end_time;size:5" json:"endTime,omitempty"`

	Quantity      *int    `gorm:"column:quantity" json:"quantity,omitempty"`
	SheetSize     *string `gorm:"column:sheet_size;size:16" json:"sheetSize,omitempty"`
	AttachmentRef *string `gorm:"column:attachment_ref;size:255" json:"attachmentRef,omitempty"`

	// AttachmentType is the declared media type of the attachment; the file
	// itself lives in external storage.
	AttachmentType *string `gorm:"column:attachment_type;size:16" json:"attachmentType,omitempty"`

	Status     string  `gorm:"column:status;size:32;default:pending;index" json:"status"`
	TotalValue float64 `gorm:"column:total_value" json:"totalValue"`

	Service ReservableService `gorm:"foreignKey:ServiceID;references:ID" json:"service,omitempty"`
}
