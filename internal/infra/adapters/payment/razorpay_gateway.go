package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*RazorpayGateway)(nil)

// RazorpayGateway implements adapter.PaymentGateway against the Razorpay
// Orders API using direct HTTP calls with basic auth.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
	log       *zerolog.Logger

	maxRetries uint64
	baseDelay  time.Duration
}

func NewRazorpayGateway(keyID, keySecret, baseURL string, logger *zerolog.Logger) (*RazorpayGateway, error) {
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay credentials empty")
	}
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	return &RazorpayGateway{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		log:        logger,
		maxRetries: 3,
		baseDelay:  2 * time.Second,
	}, nil
}

func (g *RazorpayGateway) Name() string { return "razorpay" }

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers an order with Razorpay. Transient failures are
// retried with exponential backoff (base delay doubled per attempt) up to
// maxRetries; exhaustion surfaces domain.ErrServiceUnavailable.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*adapter.GatewayOrder, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if currency == "" {
		currency = "INR"
	}

	var order *adapter.GatewayOrder
	attempt := 0
	call := func() error {
		attempt++
		o, err := g.createOrderOnce(ctx, amount, currency, receipt, notes)
		if err != nil {
			g.log.Error().Err(err).Int("attempt", attempt).Msg("razorpay order creation failed")
			return err
		}
		order = o
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.baseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0

	if err := backoff.Retry(call, backoff.WithContext(backoff.WithMaxRetries(b, g.maxRetries), ctx)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	return order, nil
}

func (g *RazorpayGateway) createOrderOnce(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*adapter.GatewayOrder, error) {
	reqBody := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		reqBody["notes"] = notes
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode >= 300 {
		err := fmt.Errorf("razorpay http %d: %s", resp.StatusCode, string(body))
		// A 4xx means the request itself is bad; retrying cannot fix it.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	var parsed razorpayOrderResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w, body: %s", err, string(body))
	}
	if parsed.ID == "" {
		return nil, errors.New("razorpay response missing order id")
	}

	g.log.Info().Str("order_id", parsed.ID).Int64("amount", parsed.Amount).Msg("razorpay order created")
	return &adapter.GatewayOrder{
		ID:       parsed.ID,
		Amount:   parsed.Amount,
		Currency: parsed.Currency,
		Receipt:  parsed.Receipt,
	}, nil
}
