package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"logistic-viability-service/internal/api/handlers"
	"logistic-viability-service/internal/platform/metrics"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(scenarios *handlers.ScenarioHandler, costs *handlers.CostHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/scenarios/run", scenarios.Run)
	mux.HandleFunc("/scenarios/compare", scenarios.Compare)
	mux.HandleFunc("/costs/estimates", costs.Estimates)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
