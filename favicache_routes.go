package favicache

import (
	"github.com/caasmo/favicache/core"
)

func route(app *core.App) {
	r := app.Router()

	r.HandleFunc("/api/favicon/{domain}", app.FaviconHandler)
	r.HandleFunc("/api/domains/top", app.DomainStatsHandler)
	r.HandleFunc("/api/health", app.HealthHandler)
	r.HandleFunc("/metrics", app.MetricsHandler)
}
