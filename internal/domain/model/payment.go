package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment is the relational record of a settled (or attempted) charge.
// Amount is stored as an integer in the smallest currency unit to avoid
// float errors.
type Payment struct {
	ID        string        `json:"id"` // UUID
	UserID    string        `json:"user_id"`
	OrderID   string        `json:"order_id"`   // gateway order id
	PaymentID string        `json:"payment_id"` // gateway payment id
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	Plan      string        `json:"plan"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
