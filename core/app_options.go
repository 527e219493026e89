package core

import (
	"log/slog"
	"net/http"

	"github.com/caasmo/favicache/cache"
	"github.com/caasmo/favicache/config"
	"github.com/caasmo/favicache/router"
	"github.com/caasmo/favicache/topk"
)

type Option func(*App)

// WithConfigProvider sets the application's configuration provider.
func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) {
		a.configProvider = p
	}
}

// WithLogger sets the logger implementation.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithRouter sets the router implementation.
func WithRouter(r router.Router) Option {
	return func(a *App) {
		a.router = r
	}
}

// WithCache sets the result cache. Leaving it unset selects the edge
// profile: no caching, no cache markers on responses.
func WithCache(c cache.Cache[string, IconEntry]) Option {
	return func(a *App) {
		a.cache = c
	}
}

// WithHTTPClient sets the client used for all outbound fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) {
		a.client = c
	}
}

// WithIconFinder sets the icon-discovery collaborator.
func WithIconFinder(f IconFinder) Option {
	return func(a *App) {
		a.finder = f
	}
}

// WithProxySource sets the proxy-favicon fallback collaborator.
func WithProxySource(p ProxySource) Option {
	return func(a *App) {
		a.proxy = p
	}
}

// WithStats sets the top-domains tracker.
func WithStats(t *topk.Tracker) Option {
	return func(a *App) {
		a.stats = t
	}
}
