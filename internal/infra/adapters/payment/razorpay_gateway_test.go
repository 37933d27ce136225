package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain"
)

func newTestGateway(t *testing.T, baseURL string) *RazorpayGateway {
	t.Helper()
	logger := zerolog.Nop()
	g, err := NewRazorpayGateway("rzp_test_key", "rzp_test_secret", baseURL, &logger)
	if err != nil {
		t.Fatalf("NewRazorpayGateway: %v", err)
	}
	// keep test runs fast
	g.baseDelay = time.Millisecond
	return g
}

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/orders" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if _, _, ok := r.BasicAuth(); !ok {
				t.Error("expected basic auth")
			}
			var body map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["amount"].(float64) != 1000 {
				t.Errorf("amount = %v, want 1000", body["amount"])
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "order_remote1", "amount": 1000, "currency": "INR", "receipt": "rcpt-1", "status": "created",
			})
		}))
		defer srv.Close()

		g := newTestGateway(t, srv.URL)
		order, err := g.CreateOrder(ctx, 1000, "INR", "rcpt-1", map[string]string{"plan": "starter_monthly"})
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		if order.ID != "order_remote1" {
			t.Errorf("order id = %s, want order_remote1", order.ID)
		}
	})

	t.Run("retries transient failures then succeeds", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "order_retry1", "amount": 500, "currency": "INR",
			})
		}))
		defer srv.Close()

		g := newTestGateway(t, srv.URL)
		order, err := g.CreateOrder(ctx, 500, "INR", "rcpt-2", nil)
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		if order.ID != "order_retry1" {
			t.Errorf("order id = %s", order.ID)
		}
		if got := atomic.LoadInt32(&calls); got != 3 {
			t.Errorf("calls = %d, want 3", got)
		}
	})

	t.Run("exhausted retries surface ErrServiceUnavailable", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		g := newTestGateway(t, srv.URL)
		_, err := g.CreateOrder(ctx, 500, "INR", "rcpt-3", nil)
		if !errors.Is(err, domain.ErrServiceUnavailable) {
			t.Fatalf("expected ErrServiceUnavailable, got %v", err)
		}
		// initial attempt plus maxRetries
		if got := atomic.LoadInt32(&calls); got != 4 {
			t.Errorf("calls = %d, want 4", got)
		}
	})

	t.Run("does not retry a 4xx rejection", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"description":"amount below minimum"}}`))
		}))
		defer srv.Close()

		g := newTestGateway(t, srv.URL)
		_, err := g.CreateOrder(ctx, 500, "INR", "rcpt-4", nil)
		if !errors.Is(err, domain.ErrServiceUnavailable) {
			t.Fatalf("expected ErrServiceUnavailable, got %v", err)
		}
		if got := atomic.LoadInt32(&calls); got != 1 {
			t.Errorf("calls = %d, want 1 (client errors must not be retried)", got)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		g := newTestGateway(t, "http://localhost:0")
		if _, err := g.CreateOrder(ctx, 0, "INR", "rcpt", nil); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
