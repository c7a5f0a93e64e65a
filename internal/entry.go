// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mcpgo "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/starford/raido/internal/fetch"
	"github.com/starford/raido/internal/mcpserver"
	"github.com/starford/raido/internal/registry"
	"github.com/starford/raido/internal/syncreg"
)

// Run starts the MCP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	// MCP stdio owns stdout, so logs always go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("transport", cfg.App.Transport),
		slog.String("cache_path", cfg.Cache.Path),
		slog.Int("cache_ttl_hours", cfg.Cache.TTLHours),
		slog.String("log_level", cfg.App.LogLevel.String()))

	client, err := buildClient(cfg, logger)
	if err != nil {
		return err
	}

	srv := mcpserver.New(registry.Default(), client)

	if cfg.App.Transport == TransportStdio {
		logger.Info("Serving MCP over stdio")
		return srv.ServeStdio()
	}

	// HTTP transport: health endpoints plus the streamable MCP handler.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/mcp", mcpgo.NewStreamableHTTPServer(srv.MCPServer()))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Server stopped successfully")
	return nil
}

// RunSync prints a registry drift report against the live d3js.org sidebar.
func RunSync(ctx context.Context, opts ...Option) error {
	app := &application{out: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))

	client, err := buildClient(app.config, logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, "Fetching live registry from d3js.org/api...")
	live, err := syncreg.FetchLive(ctx, client)
	if err != nil {
		return fmt.Errorf("fetch live registry: %w", err)
	}
	syncreg.Diff(registry.Default(), live).Print(app.out)
	return nil
}

func buildClient(cfg *Config, logger *slog.Logger) (*fetch.Client, error) {
	cache, err := fetch.NewCache(cfg.Cache.Path, cfg.Cache.TTL())
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	return fetch.NewClient(cache, logger, cfg.Upstream.RequestsPerSecond), nil
}
