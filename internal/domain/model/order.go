package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // created locally; awaiting checkout
	OrderStatusCompleted OrderStatus = "completed" // client-side verification succeeded
	OrderStatusCaptured  OrderStatus = "captured"  // gateway confirmed capture via webhook
)

// rank orders the status lifecycle; transitions never move backwards.
func (s OrderStatus) rank() int {
	switch s {
	case OrderStatusPending:
		return 0
	case OrderStatusCompleted:
		return 1
	case OrderStatusCaptured:
		return 2
	}
	return -1
}

// CanAdvanceTo reports whether a transition from s to next is a forward move.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	return next.rank() > s.rank()
}

// Order records a requested payment amount tied to a user and plan.
// Amounts are integers in the smallest currency unit (paise for INR).
type Order struct {
	OrderID   string      `json:"order_id"`
	Amount    int64       `json:"amount"`
	Currency  string      `json:"currency"` // 3-letter code
	UserID    string      `json:"user_id"`
	Plan      string      `json:"plan"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
