package models

import "time"

const (
	PaymentPending  = "pending"
	PaymentInReview = "in_review"
	PaymentPaid     = "paid"
)

// ExpenseDetail is one office's share of one period. Rows exist only for
// offices that were occupied at calculation time.
type ExpenseDetail struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	ExpensePeriodID uint `gorm:"column:expense_period_id;index" json:"expense_period_id"`
	OfficeID        uint `gorm:"column:office_id;index" json:"office_id"`

	Amount       float64 `gorm:"column:amount" json:"amount"`
	PaymentState string  `gorm:"column:payment_state;size:32;default:pending" json:"paymentState"`

	// ProofReference points at an externally stored payment slip.
	ProofReference *string `gorm:"column:proof_reference;size:255" json:"proofReference,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
