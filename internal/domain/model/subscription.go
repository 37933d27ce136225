package model

import "time"

// SubscriptionRecord is the payment flow's view of a user's entitlement.
// It is created or overwritten on successful verification and on
// subscription.charged webhooks, and deactivated on subscription.cancelled.
type SubscriptionRecord struct {
	UserID        string     `json:"user_id"`
	Plan          string     `json:"plan"`
	Active        bool       `json:"active"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	LastChargedAt *time.Time `json:"last_charged_at,omitempty"`
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusInactive  SubscriptionStatus = "inactive"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// Subscription is the relational record served by the CRUD API.
type Subscription struct {
	ID        string             `json:"id"` // UUID
	UserID    string             `json:"user_id"`
	PlanName  string             `json:"plan_name"`
	Status    SubscriptionStatus `json:"status"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Amount    int64              `json:"amount"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
