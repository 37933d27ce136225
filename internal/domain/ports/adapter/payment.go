package adapter

import "context"

// GatewayOrder is the provider-side order created ahead of checkout.
type GatewayOrder struct {
	ID       string // provider order id, e.g. "order_XXXX"
	Amount   int64  // smallest currency unit
	Currency string
	Receipt  string
}

// PaymentGateway is the port for the hosted payment provider.
type PaymentGateway interface {
	Name() string
	// CreateOrder registers an order with the provider. Implementations
	// retry transient failures internally and surface
	// domain.ErrServiceUnavailable once retries are exhausted.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error)
}
