package dispatch

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type dispatchMetrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	guardOutcomes *prometheus.CounterVec
	panics        prometheus.Counter
}

var (
	metricsInstance *dispatchMetrics
	metricsOnce     sync.Once
)

// getMetrics returns the process-wide dispatcher metrics registered with the
// default Prometheus registry.
func getMetrics() *dispatchMetrics {
	metricsOnce.Do(func() {
		metricsInstance = &dispatchMetrics{
			requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "forum",
					Subsystem: "dispatch",
					Name:      "requests_total",
					Help:      "Total number of dispatched requests by route and status",
				},
				[]string{"route", "method", "status"},
			),
			duration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "forum",
					Subsystem: "dispatch",
					Name:      "duration_seconds",
					Help:      "Time spent dispatching a request, guards and handler included",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"route"},
			),
			guardOutcomes: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "forum",
					Subsystem: "dispatch",
					Name:      "guard_outcomes_total",
					Help:      "Total number of guard evaluations by guard and outcome",
				},
				[]string{"guard", "outcome"},
			),
			panics: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "forum",
					Subsystem: "dispatch",
					Name:      "panics_recovered_total",
					Help:      "Total number of handler and guard panics recovered",
				},
			),
		}
	})
	return metricsInstance
}
