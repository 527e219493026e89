package core

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/caasmo/favicache/cache"
	"github.com/caasmo/favicache/config"
	"github.com/caasmo/favicache/discover"
	"github.com/caasmo/favicache/proxyicon"
	"github.com/caasmo/favicache/router"
	"github.com/caasmo/favicache/topk"
)

// IconEntry is what the result cache stores per normalized domain.
type IconEntry struct {
	Body        []byte
	ContentType string
}

// IconFinder is the icon-discovery collaborator: fetch a page, return its
// declared icon links. Failures are non-fatal to the resolver.
type IconFinder interface {
	Find(ctx context.Context, pageURL string, hdr http.Header) ([]discover.Icon, error)
}

// ProxySource is the fallback collaborator consulted when discovery yields
// nothing. It owns its response entirely.
type ProxySource interface {
	ServeIcon(w http.ResponseWriter, r *http.Request, domain string)
}

// App is the application wide context. Permanent objects (cache, clients,
// config provider) live here; all handlers are App methods.
//
// The cache is optional. A nil cache is the edge profile: every request
// re-resolves from scratch and no cache markers are emitted.
type App struct {
	configProvider *config.Provider
	logger         *slog.Logger
	router         router.Router
	cache          cache.Cache[string, IconEntry]
	client         *http.Client
	finder         IconFinder
	proxy          ProxySource
	stats          *topk.Tracker
}

func NewApp(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.configProvider == nil {
		return nil, errors.New("config provider is required (use WithConfigProvider)")
	}
	if a.router == nil {
		return nil, errors.New("router is required (use WithRouter)")
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	cfg := a.Config()
	if a.client == nil {
		a.client = &http.Client{Timeout: cfg.Favicon.RequestTimeout.Duration}
	}
	if a.finder == nil {
		a.finder = discover.NewFinder(a.client, cfg.Favicon.MaxPageBytes, a.logger)
	}
	if a.proxy == nil {
		a.proxy = proxyicon.New(a.client, cfg.Favicon.UpstreamURL, a.logger)
	}

	return a, nil
}

// Router returns the application's router instance.
func (a *App) Router() router.Router {
	return a.router
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

func (a *App) Cache() cache.Cache[string, IconEntry] {
	return a.cache
}

func (a *App) Stats() *topk.Tracker {
	return a.stats
}
