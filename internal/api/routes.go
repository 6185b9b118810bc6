package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stealthcompany.com/notesync/internal/metrics"
)

// SetupRoutes configures and returns the HTTP router
func SetupRoutes(runner ImportRunner) *mux.Router {
	r := mux.NewRouter()

	r.Use(metrics.Middleware)

	r.HandleFunc("/health", HealthHandler).Methods("GET")
	r.HandleFunc("/run-import", RunImportHandler(runner)).Methods("POST")

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
