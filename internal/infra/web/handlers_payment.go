// File: internal/infra/web/handlers_payment.go
package web

import (
	"encoding/json"
	"io"
	"net/http"

	"fitcoach-ai-backend/internal/domain/ports/adapter"
	"fitcoach-ai-backend/internal/infra/logging"
	"fitcoach-ai-backend/internal/usecase"
)

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Plan     string `json:"plan"`
	UserID   string `json:"user_id"`
}

func createOrderHandler(paymentUC usecase.PaymentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := logging.TraceID(ctx)

		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", "", traceID)
			return
		}

		order, err := paymentUC.CreateOrder(ctx, req.Amount, req.Currency, req.Plan, req.UserID)
		if err != nil {
			writeDomainError(w, err, traceID)
			return
		}
		writeJSON(w, http.StatusCreated, order)
	}
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	UserID    string `json:"user_id"`
}

func verifyPaymentHandler(paymentUC usecase.PaymentUseCase, notifier adapter.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := logging.TraceID(ctx)

		var req verifyPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", "", traceID)
			return
		}

		if err := paymentUC.VerifyPayment(ctx, req.OrderID, req.PaymentID, req.Signature, req.UserID); err != nil {
			writeDomainError(w, err, traceID)
			return
		}

		if notifier != nil {
			notifier.Notify(ctx, "payment.completed", map[string]string{
				"user_id":  req.UserID,
				"order_id": req.OrderID,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "success",
			"message": "Payment verified, subscription activated",
		})
	}
}

func webhookHandler(paymentUC usecase.PaymentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := logging.TraceID(ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "failed to read request body", "", traceID)
			return
		}

		sig := r.Header.Get("X-Razorpay-Signature")
		if err := paymentUC.HandleWebhook(ctx, body, sig); err != nil {
			writeDomainError(w, err, traceID)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})
	}
}
