package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	exchangeSteps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relayctl",
			Subsystem: "exchange",
			Name:      "steps_total",
			Help:      "Exchange steps by outcome.",
		},
		[]string{"strategy", "outcome"},
	)
	exchangeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relayctl",
			Subsystem: "exchange",
			Name:      "runs_total",
			Help:      "Completed exchanges.",
		},
		[]string{"strategy"},
	)
	exchangeAccuracy = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "relayctl",
			Subsystem: "exchange",
			Name:      "accuracy_percent",
			Help:      "Final grid accuracy of completed exchanges.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"strategy"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(exchangeSteps, exchangeRuns, exchangeAccuracy)
	})
}

func RecordStep(strategy, outcome string) {
	RegisterMetrics()
	exchangeSteps.WithLabelValues(strategy, outcome).Inc()
}

func RecordRun(strategy string, accuracy float64) {
	RegisterMetrics()
	exchangeRuns.WithLabelValues(strategy).Inc()
	exchangeAccuracy.WithLabelValues(strategy).Observe(accuracy)
}

// WriteMetricsFile dumps the default registry in text exposition format.
func WriteMetricsFile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
