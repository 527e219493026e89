package core

import (
	"encoding/json"
	"net/http"
)

// DomainStatsHandler returns the hottest requested domains as JSON.
// Endpoint: GET /api/domains/top
func (a *App) DomainStatsHandler(w http.ResponseWriter, r *http.Request) {
	cfg := a.Config()
	if !cfg.Stats.Enabled || a.stats == nil {
		http.NotFound(w, r)
		return
	}

	if !ipAllowed(r, cfg.Stats.AllowedIPs) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a.stats.Top(cfg.Stats.K))
}
