package core

import "net/http"

// HealthHandler is a trivial liveness probe.
// Endpoint: GET /api/health
func (a *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
