package core

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves Prometheus metrics in the standard format
// Endpoint: GET /metrics
// Authenticated: No
// Allowed Mimetype: text/plain
func (a *App) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	if !a.Config().Metrics.Enabled {
		http.NotFound(w, r)
		return
	}

	if !ipAllowed(r, a.Config().Metrics.AllowedIPs) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	promhttp.Handler().ServeHTTP(w, r)
}
