// File: internal/usecase/payment_uc.go
package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/adapter"
	"fitcoach-ai-backend/internal/domain/ports/repository"
	"fitcoach-ai-backend/internal/infra/adapters/payment"
	"fitcoach-ai-backend/internal/infra/metrics"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// SupportedPlans is the fixed plan catalogue orders may reference.
var SupportedPlans = map[string]int64{
	"starter_monthly": 1000,
	"starter_yearly":  10000,
}

type PaymentUseCase interface {
	// CreateOrder registers a pending order for a supported plan.
	CreateOrder(ctx context.Context, amount int64, currency, plan, userID string) (*model.Order, error)
	// VerifyPayment checks the gateway signature over "orderID|paymentID"
	// and, on success, completes the order and activates the user's
	// subscription record.
	VerifyPayment(ctx context.Context, orderID, paymentID, signature, userID string) error
	// HandleWebhook authenticates and dispatches a gateway callback.
	// Events outside the known set are acknowledged without action.
	HandleWebhook(ctx context.Context, body []byte, signatureHeader string) error
}

type paymentUC struct {
	orders  repository.OrderRepository
	subs    repository.SubscriptionRecordRepository
	ledger  repository.PaymentRepository // optional durable trail; may be nil
	gateway adapter.PaymentGateway       // optional; nil means local order ids
	secret  string                       // shared gateway secret; empty enables stub mode
	log     *zerolog.Logger
}

func NewPaymentUseCase(
	orders repository.OrderRepository,
	subs repository.SubscriptionRecordRepository,
	ledger repository.PaymentRepository,
	gateway adapter.PaymentGateway,
	secret string,
	logger *zerolog.Logger,
) *paymentUC {
	return &paymentUC{orders: orders, subs: subs, ledger: ledger, gateway: gateway, secret: secret, log: logger}
}

func (u *paymentUC) CreateOrder(ctx context.Context, amount int64, currency, plan, userID string) (*model.Order, error) {
	if amount <= 0 || userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if currency == "" {
		currency = "INR"
	}
	if _, ok := SupportedPlans[plan]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedPlan, plan)
	}

	orderID := "order_" + ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	if u.gateway != nil {
		gw, err := u.gateway.CreateOrder(ctx, amount, currency, orderID, map[string]string{
			"user_id": userID,
			"plan":    plan,
		})
		if err != nil {
			metrics.IncPayment("failed")
			return nil, err
		}
		orderID = gw.ID
	}

	o := &model.Order{
		OrderID:   orderID,
		Amount:    amount,
		Currency:  currency,
		UserID:    userID,
		Plan:      plan,
		Status:    model.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.orders.Put(ctx, o); err != nil {
		return nil, err
	}

	metrics.IncPayment("initiated")
	u.log.Info().
		Str("order_id", o.OrderID).
		Str("user_id", userID).
		Int64("amount", amount).
		Str("plan", plan).
		Msg("payment order created")
	return o, nil
}

func (u *paymentUC) VerifyPayment(ctx context.Context, orderID, paymentID, signature, userID string) error {
	if orderID == "" || paymentID == "" || userID == "" {
		return domain.ErrInvalidArgument
	}

	if u.secret == "" {
		// Stub mode for local development: accept without verification.
		u.log.Warn().Str("order_id", orderID).Msg("no gateway secret configured; skipping signature verification")
	} else {
		msg := []byte(orderID + "|" + paymentID)
		if err := payment.VerifySignature(msg, signature, u.secret); err != nil {
			metrics.IncPayment("failed")
			return err
		}
	}

	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		// Verification may succeed without a matching order. Kept from the
		// original flow; tightening this is an open product decision.
		u.log.Warn().Str("order_id", orderID).Msg("verified payment references unknown order")
	} else {
		if err := u.orders.CompareAndSwapStatus(ctx, orderID, order.Status, model.OrderStatusCompleted); err != nil {
			u.log.Debug().Err(err).Str("order_id", orderID).Msg("order already past completed")
		}
	}

	now := time.Now().UTC()
	rec := &model.SubscriptionRecord{UserID: userID, Active: true, ActivatedAt: &now}
	if order != nil {
		rec.Plan = order.Plan
	}
	if err := u.subs.Put(ctx, rec); err != nil {
		return err
	}

	if u.ledger != nil && order != nil {
		p := &model.Payment{
			ID:        uuid.NewString(),
			UserID:    userID,
			OrderID:   orderID,
			PaymentID: paymentID,
			Amount:    order.Amount,
			Currency:  order.Currency,
			Plan:      order.Plan,
			Status:    model.PaymentStatusCompleted,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := u.ledger.Save(ctx, p); err != nil {
			u.log.Error().Err(err).Str("order_id", orderID).Msg("failed to record payment in ledger")
		}
	}

	metrics.IncPayment("completed")
	u.log.Info().
		Str("order_id", orderID).
		Str("payment_id", paymentID).
		Str("user_id", userID).
		Msg("payment verified; subscription activated")
	return nil
}

func (u *paymentUC) HandleWebhook(ctx context.Context, body []byte, signatureHeader string) error {
	if err := payment.RequireSignatureIfConfigured(signatureHeader, u.secret); err != nil {
		return err
	}
	if signatureHeader != "" && u.secret != "" {
		if err := payment.VerifySignature(body, signatureHeader, u.secret); err != nil {
			return err
		}
	}

	ev := model.DecodeWebhookEvent(body)
	metrics.IncWebhookEvent(ev.Raw)

	switch ev.Kind {
	case model.WebhookPaymentCaptured:
		u.handlePaymentCaptured(ctx, ev)
	case model.WebhookPaymentFailed:
		u.log.Info().Str("order_id", ev.OrderID).Msg("webhook: payment failed")
		metrics.IncPayment("failed")
	case model.WebhookSubscriptionCharged:
		u.handleSubscriptionCharged(ctx, ev)
	case model.WebhookSubscriptionCancelled:
		u.handleSubscriptionCancelled(ctx, ev)
	case model.WebhookUnknown:
		u.log.Info().Str("event", ev.Raw).Msg("webhook: unknown event acknowledged")
	}
	return nil
}

func (u *paymentUC) handlePaymentCaptured(ctx context.Context, ev model.WebhookEvent) {
	if ev.OrderID == "" {
		return
	}
	order, err := u.orders.Get(ctx, ev.OrderID)
	if err != nil {
		u.log.Info().Str("order_id", ev.OrderID).Msg("webhook: captured event for unknown order")
		return
	}
	if err := u.orders.CompareAndSwapStatus(ctx, ev.OrderID, order.Status, model.OrderStatusCaptured); err != nil {
		u.log.Debug().Err(err).Str("order_id", ev.OrderID).Msg("webhook: order already captured")
		return
	}
	u.log.Info().Str("order_id", ev.OrderID).Msg("webhook: order captured")
}

func (u *paymentUC) handleSubscriptionCharged(ctx context.Context, ev model.WebhookEvent) {
	if ev.UserID == "" {
		return
	}
	if err := u.subs.MarkCharged(ctx, ev.UserID); err != nil {
		u.log.Info().Str("user_id", ev.UserID).Msg("webhook: charged event for unknown subscription")
		return
	}
	u.log.Info().Str("user_id", ev.UserID).Msg("webhook: subscription charged")
}

func (u *paymentUC) handleSubscriptionCancelled(ctx context.Context, ev model.WebhookEvent) {
	if ev.UserID == "" {
		return
	}
	if err := u.subs.Deactivate(ctx, ev.UserID); err != nil {
		u.log.Info().Str("user_id", ev.UserID).Msg("webhook: cancel event for unknown subscription")
		return
	}
	u.log.Info().Str("user_id", ev.UserID).Msg("webhook: subscription cancelled")
}
