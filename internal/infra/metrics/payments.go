package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(paymentsTotal, webhookEvents, subscriptionsExpired)
}

var (
	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Payment flow outcomes (initiated/completed/failed).",
		},
		[]string{"status"},
	)

	webhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_webhook_events_total",
			Help: "Webhook events received by kind, including unknown.",
		},
		[]string{"event"},
	)

	subscriptionsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subscriptions_expired_total",
			Help: "Subscriptions moved to expired by the sweep worker.",
		},
	)
)

func IncPayment(status string) {
	paymentsTotal.WithLabelValues(norm(status)).Inc()
}

func IncWebhookEvent(event string) {
	if event == "" {
		event = "unknown"
	}
	webhookEvents.WithLabelValues(norm(event)).Inc()
}

func IncSubscriptionsExpired(n int) {
	subscriptionsExpired.Add(float64(n))
}
