package dict

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics mirrors the promauto.NewGauge/NewCounter style used for other
// queue and cache gauges in this codebase. globalMetrics is a
// package-level var, so Go initializes it exactly once per process;
// every Table shares it, and constructing many Tables in tests never
// panics on "duplicate metrics collector registration".
type metrics struct {
	promoted     prometheus.Counter
	resizes      prometheus.Counter
	tableLength  prometheus.Gauge
	tableCount   prometheus.Gauge
}

var globalMetrics = newMetrics()

func newMetrics() *metrics {
	return &metrics{
		promoted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "harmonydict",
			Name:      "promoted_total",
			Help:      "Total number of nodes promoted from unstable to stable chains.",
		}),
		resizes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "harmonydict",
			Name:      "resize_total",
			Help:      "Total number of table resizes performed.",
		}),
		tableLength: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "harmonydict",
			Name:      "table_length",
			Help:      "Current bucket array length (modulus) of the table.",
		}),
		tableCount: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "harmonydict",
			Name:      "table_count",
			Help:      "Node count as of the last sequential-regime transition.",
		}),
	}
}
