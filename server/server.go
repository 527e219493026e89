package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/caasmo/favicache/config"
)

// Server runs the HTTP listener and owns the process lifecycle: start,
// SIGHUP config reload, and graceful shutdown on SIGINT/SIGQUIT.
type Server struct {
	provider *config.Provider
	handler  http.Handler
	logger   *slog.Logger

	// reloadFunc is invoked on SIGHUP. Typically reloads the config file
	// into the provider. Errors are logged and the server keeps running.
	reloadFunc func() error

	// exitFunc defaults to os.Exit. Overridable in tests.
	exitFunc func(code int)
}

func NewServer(provider *config.Provider, handler http.Handler, logger *slog.Logger, reloadFunc func() error) *Server {
	if reloadFunc == nil {
		reloadFunc = func() error { return nil }
	}
	return &Server{
		provider:   provider,
		handler:    handler,
		logger:     logger,
		reloadFunc: reloadFunc,
		exitFunc:   os.Exit,
	}
}

// Handler returns the root handler the listener serves.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run blocks until the process receives a termination signal or the listener
// fails, then shuts down gracefully and calls exitFunc.
func (s *Server) Run() {
	cfg := s.provider.Get().Server

	s.logger.Info("server configuration",
		"addr", cfg.Addr,
		"tls", cfg.EnableTLS,
		"read_timeout", cfg.ReadTimeout.Duration,
		"read_header_timeout", cfg.ReadHeaderTimeout.Duration,
		"write_timeout", cfg.WriteTimeout.Duration,
		"idle_timeout", cfg.IdleTimeout.Duration,
		"shutdown_timeout", cfg.ShutdownGracefulTimeout.Duration,
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadTimeout:       cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		WriteTimeout:      cfg.WriteTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
	}

	serverError := make(chan error, 1)
	go func() {
		err := s.listenAndServe(srv, cfg)
		if err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(signals)

	exitCode := 0

loop:
	for {
		select {
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				s.logger.Info("received SIGHUP, reloading configuration")
				if err := s.reloadFunc(); err != nil {
					s.logger.Error("configuration reload failed", "err", err)
				}
				continue
			}
			s.logger.Info("received shutdown signal", "signal", sig.String())
			break loop
		case err := <-serverError:
			s.logger.Error("server error, initiating shutdown", "err", err)
			exitCode = 1
			break loop
		}
	}

	gracefulCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownGracefulTimeout.Duration)
	defer cancelShutdown()

	shutdownGroup, _ := errgroup.WithContext(gracefulCtx)
	shutdownGroup.Go(func() error {
		s.logger.Info("shutting down HTTP server")
		if err := srv.Shutdown(gracefulCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := shutdownGroup.Wait(); err != nil {
		s.logger.Error("error during shutdown", "err", err)
		s.exitFunc(1)
		return
	}

	s.logger.Info("server stopped gracefully")
	s.exitFunc(exitCode)
}

func (s *Server) listenAndServe(srv *http.Server, cfg config.Server) error {
	if !cfg.EnableTLS {
		s.logger.Info("starting HTTP server", "addr", cfg.Addr)
		return srv.ListenAndServe()
	}

	cert, err := tls.X509KeyPair([]byte(cfg.CertData), []byte(cfg.KeyData))
	if err != nil {
		return fmt.Errorf("loading TLS key pair: %w", err)
	}
	srv.TLSConfig = &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("starting HTTPS server", "addr", cfg.Addr)
	return srv.Serve(tls.NewListener(ln, srv.TLSConfig))
}
