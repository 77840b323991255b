package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oddeye/oddeye/pkg/capture"
	"github.com/oddeye/oddeye/pkg/config"
	"github.com/oddeye/oddeye/pkg/metrics"
	"github.com/oddeye/oddeye/pkg/server/api"
	"github.com/oddeye/oddeye/pkg/server/httpx"
)

const shutdownTimeout = 10 * time.Second

// App orchestrates the server runtime components:
// - Capture pipeline and metrics
// - HTTP server
// - Lifecycle management
type App struct {
	HTTP    *http.Server
	Ready   *atomic.Bool
	Config  config.ServerConfig
	Deps    *Deps
	Metrics *metrics.Collectors

	listener net.Listener
}

// New creates and configures a new server application.
func New(cfg config.ServerConfig, deps *Deps) (*App, error) {
	deps.Logger.Info().Msg("Initializing server application")

	if deps.Sealer == nil {
		return nil, errors.New("sealer is required")
	}

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	collectors := metrics.New()
	if err := collectors.Register(registry); err != nil {
		return nil, err
	}

	pipeline := capture.New(deps.Sealer,
		capture.WithClock(deps.Clock),
		capture.WithMetrics(collectors),
	)

	// Prepare API dependencies
	ready := &atomic.Bool{}
	apiDeps := &api.Deps{
		Capture: pipeline,
		Ready:   ready,
		Metrics: collectors,
	}
	if cfg.MetricsEnabled {
		apiDeps.MetricsHandler = metrics.Handler(registry)
	} else {
		deps.Logger.Info().Msg("Metrics endpoint disabled")
	}

	// Create router with all endpoints mounted
	router := httpx.NewRouter(cfg, apiDeps)

	// Create HTTP server with middleware
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Addr, strconv.Itoa(cfg.Port)),
		Handler:      httpx.Chain(cfg, router),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return deps.Logger.WithContext(context.Background())
		},
	}

	return &App{
		HTTP:    httpServer,
		Ready:   ready,
		Config:  cfg,
		Deps:    deps,
		Metrics: collectors,
	}, nil
}

// Addr returns the bound listen address once Run has started listening, and
// the configured address before that.
func (a *App) Addr() string {
	if a.Ready.Load() && a.listener != nil {
		return a.listener.Addr().String()
	}
	return a.HTTP.Addr
}

// Run starts the server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.Deps.Logger.Info().
		Str("addr", a.HTTP.Addr).
		Bool("debug_routes", a.Config.DebugRoutes).
		Bool("metrics", a.Config.MetricsEnabled).
		Msg("Starting oddeye server")

	ln, err := net.Listen("tcp", a.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.HTTP.Addr, err)
	}
	a.listener = ln

	// Start HTTP server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := a.HTTP.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	// Mark as ready
	a.Ready.Store(true)
	a.Deps.Logger.Info().
		Str("addr", ln.Addr().String()).
		Msg("Server is ready and accepting connections")

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		a.Deps.Logger.Info().Msg("Shutdown signal received")
	case err := <-serverErr:
		a.Ready.Store(false)
		a.Deps.Logger.Error().Err(err).Msg("Server error")
		return err
	}

	// Graceful shutdown
	return a.shutdown()
}

// shutdown performs graceful shutdown of all components.
func (a *App) shutdown() error {
	a.Deps.Logger.Info().Msg("Initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Mark as not ready
	a.Ready.Store(false)

	a.Deps.Logger.Info().Msg("Shutting down HTTP server...")
	if err := a.HTTP.Shutdown(shutdownCtx); err != nil {
		a.Deps.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
		return err
	}

	a.Deps.Logger.Info().Msg("Server shutdown complete")
	return nil
}
