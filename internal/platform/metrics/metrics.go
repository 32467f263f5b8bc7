package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Evaluations counts scenario evaluations by outcome.
	Evaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "scenario_evaluations_total", Help: "Scenario evaluations by outcome."},
		[]string{"outcome"},
	)

	// EvaluationDuration tracks scenario evaluation latency in seconds.
	EvaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "scenario_evaluation_duration_seconds", Help: "Scenario evaluation duration in seconds.", Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}},
	)

	// CacheHits counts result-cache lookups by outcome.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "result_cache_lookups_total", Help: "Result cache lookups by outcome."},
		[]string{"outcome"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Evaluations)
		Registry.MustRegister(EvaluationDuration)
		Registry.MustRegister(CacheHits)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
