package favicache

import (
	"fmt"
	"log/slog"
	"os"

	phuslog "github.com/phuslu/log"

	"github.com/caasmo/favicache/cache/ristretto"
	"github.com/caasmo/favicache/core"
	"github.com/caasmo/favicache/router/httprouter"
	"github.com/caasmo/favicache/router/servemux"
)

// WithCacheRistretto selects the cached profile with a ristretto-backed
// icon cache of the given size level ("small", "medium", "large",
// "very-large").
func WithCacheRistretto(level string) (core.Option, error) {
	c, err := ristretto.New[core.IconEntry](level)
	if err != nil {
		return nil, fmt.Errorf("creating ristretto cache: %w", err)
	}
	return core.WithCache(c), nil
}

// WithoutCache forces the edge profile regardless of the cache config
// section: no cache reads or writes, no cache markers on responses.
func WithoutCache() core.Option {
	return core.WithCache(nil)
}

func WithRouterServeMux() core.Option {
	return core.WithRouter(servemux.New())
}

func WithRouterHttprouter() core.Option {
	return core.WithRouter(httprouter.New())
}

// DefaultLoggerOptions provides default settings for slog handlers.
var DefaultLoggerOptions = &slog.HandlerOptions{
	Level: slog.LevelInfo,
}

// WithPhusLogger configures slog with phuslu/log's JSON handler.
// Uses DefaultLoggerOptions if opts is nil.
func WithPhusLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	return core.WithLogger(logger)
}

// WithTextLogger configures slog with the standard library's text handler.
func WithTextLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	return core.WithLogger(logger)
}
