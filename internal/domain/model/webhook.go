package model

import "encoding/json"

type WebhookEventKind int

const (
	WebhookUnknown WebhookEventKind = iota
	WebhookPaymentCaptured
	WebhookPaymentFailed
	WebhookSubscriptionCharged
	WebhookSubscriptionCancelled
)

// WebhookEvent is the decoded gateway callback envelope. Unrecognized or
// malformed bodies decode to WebhookUnknown with the raw event string
// preserved; they are acknowledged without action.
type WebhookEvent struct {
	Kind    WebhookEventKind
	Raw     string // original event string, kept for logging
	OrderID string // payload.payment.order_id, when present
	UserID  string // payload.subscription.user_id or customer_id, when present
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			OrderID string `json:"order_id"`
		} `json:"payment"`
		Subscription struct {
			UserID     string `json:"user_id"`
			CustomerID string `json:"customer_id"`
		} `json:"subscription"`
	} `json:"payload"`
}

// DecodeWebhookEvent parses a webhook body into the closed event set.
// It never fails: a body that cannot be parsed yields WebhookUnknown.
func DecodeWebhookEvent(body []byte) WebhookEvent {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return WebhookEvent{Kind: WebhookUnknown}
	}

	ev := WebhookEvent{Raw: env.Event, OrderID: env.Payload.Payment.OrderID}
	ev.UserID = env.Payload.Subscription.UserID
	if ev.UserID == "" {
		ev.UserID = env.Payload.Subscription.CustomerID
	}

	switch env.Event {
	case "payment.captured":
		ev.Kind = WebhookPaymentCaptured
	case "payment.failed":
		ev.Kind = WebhookPaymentFailed
	case "subscription.charged":
		ev.Kind = WebhookSubscriptionCharged
	case "subscription.cancelled":
		ev.Kind = WebhookSubscriptionCancelled
	default:
		ev.Kind = WebhookUnknown
	}
	return ev
}
