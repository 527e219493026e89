package favicache

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/caasmo/favicache/config"
	"github.com/caasmo/favicache/core"
	"github.com/caasmo/favicache/core/prerouter"
	"github.com/caasmo/favicache/router"
	"github.com/caasmo/favicache/server"
	"github.com/caasmo/favicache/topk"
)

// New builds the application and its server from a TOML config file.
// Options override the config-derived defaults (router, cache, logger).
func New(configPath string, opts ...core.Option) (*core.App, *server.Server, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}

	provider := config.NewProvider(cfg)

	allOpts := []core.Option{
		core.WithConfigProvider(provider),
		WithPhusLogger(&slog.HandlerOptions{Level: cfg.Log.Level.Level}),
	}
	if cfg.Cache.Activated {
		cacheOpt, err := WithCacheRistretto(cfg.Cache.SizeLevel)
		if err != nil {
			return nil, nil, err
		}
		allOpts = append(allOpts, cacheOpt)
	}
	if cfg.Stats.Enabled {
		allOpts = append(allOpts, core.WithStats(topk.New(topk.Params{
			K:          cfg.Stats.K,
			WindowSize: cfg.Stats.WindowSize,
			Width:      cfg.Stats.Width,
			Depth:      cfg.Stats.Depth,
			TickSize:   cfg.Stats.TickSize,
		})))
	}
	allOpts = append(allOpts, opts...)

	app, err := core.NewApp(allOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing app: %w", err)
	}

	route(app)

	// SIGHUP swaps in a freshly parsed config file.
	reload := func() error {
		fresh, err := config.Load(configPath)
		if err != nil {
			return err
		}
		provider.Update(fresh)
		return nil
	}

	srv := server.NewServer(provider, preRouter(app), app.Logger(), reload)
	return app, srv, nil
}

// preRouter wraps the router with the middleware that runs before routing:
// metrics recording and request logging.
func preRouter(app *core.App) http.Handler {
	metrics := prerouter.NewMetrics(prerouter.MetricsOpts{})
	requestLog := prerouter.NewRequestLog(app)

	return router.NewChain(app.Router()).
		WithMiddleware(metrics.Execute, requestLog.Execute).
		Handler()
}
