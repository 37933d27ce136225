package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	regOnce sync.Once
	pending []prometheus.Collector
)

// register queues a collector during package init; nothing reaches the
// default registry until MustRegister runs.
func register(cs ...prometheus.Collector) {
	pending = append(pending, cs...)
}

// MustRegister flushes every queued collector into the default Prometheus
// registry. Safe to call more than once; only the first call registers.
func MustRegister() {
	regOnce.Do(func() {
		for _, c := range pending {
			prometheus.MustRegister(c)
		}
		pending = nil
	})
}
