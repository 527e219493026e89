package core

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var cacheEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "favicache_cache_events_total",
		Help: "Result cache lookups by outcome.",
	},
	[]string{"event"},
)

func init() {
	prometheus.MustRegister(cacheEvents)
}

// ipAllowed checks the client IP against an allowed list (exact match only).
func ipAllowed(r *http.Request, allowed []string) bool {
	clientIP := strings.Split(r.RemoteAddr, ":")[0]
	if clientIP == "" {
		return false
	}
	for _, ip := range allowed {
		if ip == clientIP {
			return true
		}
	}
	return false
}
