package prerouter

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/caasmo/favicache/core"
)

const logMessage = "http_request"

// RemoteIP returns the normalized IP address from the request.
func RemoteIP(r *http.Request) string {
	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	parsed, err := netip.ParseAddr(ip)
	if err != nil {
		return ip // fallback to original if parsing fails
	}
	return parsed.StringExpanded()
}

// cutStr limits string length by adding ellipsis if needed
func cutStr(str string, max int) string {
	if len(str) > max {
		return str[:max] + "..."
	}
	return str
}

// Cached common log attributes
var logType = slog.String("type", "request")

// RequestLog is middleware that logs HTTP request details
type RequestLog struct {
	app *core.App
}

// NewRequestLog creates a new request logging middleware instance
func NewRequestLog(app *core.App) *RequestLog {
	return &RequestLog{
		app: app,
	}
}

// Execute wraps the next handler with request logging
func (rl *RequestLog) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		cfg := rl.app.Config().Log.Request
		if !cfg.Activated {
			next.ServeHTTP(w, req)
			return
		}

		start := time.Now()
		rec := NewResponseRecorder(w)

		next.ServeHTTP(rec, req)

		duration := time.Since(start)
		limits := cfg.Limits

		clientIP := RemoteIP(req)
		if header := rl.app.Config().Server.ClientIpProxyHeader; header != "" {
			if forwarded := req.Header.Get(header); forwarded != "" {
				// Use the first IP in the list if header contains multiple
				parts := strings.Split(forwarded, ",")
				clientIP = strings.TrimSpace(parts[0])
			}
		}

		rl.app.Logger().Info(logMessage,
			logType,
			"method", req.Method,
			"uri", cutStr(req.URL.RequestURI(), limits.URILength),
			"status", rec.Status(),
			"duration_ms", duration.Milliseconds(),
			"remote_ip", cutStr(clientIP, limits.RemoteIPLength),
			"user_agent", cutStr(req.UserAgent(), limits.UserAgentLength),
			"referer", cutStr(req.Referer(), limits.RefererLength),
		)
	})
}
