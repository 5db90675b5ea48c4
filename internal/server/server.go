package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/agentx-labs/extensiond/internal/bundle"
	"github.com/agentx-labs/extensiond/internal/cachecontrol"
	"github.com/agentx-labs/extensiond/internal/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// Options configure a Server.
type Options struct {
	Registry *registry.Registry
	Bundles  *bundle.Store
	// CacheTTL is the lifetime of served bundles; read on every response,
	// never changed by the server.
	CacheTTL cachecontrol.TTL
	// CacheSkipAllowed lets clients bypass caching with
	// "Cache-Control: no-store".
	CacheSkipAllowed bool
	Logger           *slog.Logger
}

// Server serves the extension endpoints.
type Server struct {
	registry *registry.Registry
	bundles  *bundle.Store
	cache    cachecontrol.Policy
	logger   *slog.Logger
	metrics  *metrics
	handler  http.Handler
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	s := &Server{
		registry: opts.Registry,
		bundles:  opts.Bundles,
		cache:    cachecontrol.Policy{TTL: opts.CacheTTL, SkipAllowed: opts.CacheSkipAllowed},
		logger:   opts.Logger,
	}

	promRegistry := prometheus.NewRegistry()
	s.metrics = newMetrics(promRegistry, s.registry, s.bundles)

	mux := http.NewServeMux()
	mux.Handle("GET /extensions", s.handle(s.listExtensions))
	mux.Handle("GET /extensions/{$}", s.handle(s.listExtensions))
	mux.Handle("GET /extensions/{type}", s.handle(s.listExtensions))
	mux.Handle("GET /extensions/sources/{chunk}", s.handle(s.serveSource))
	mux.HandleFunc("GET /healthz", s.health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	mux.Handle("/", s.handle(func(w http.ResponseWriter, r *http.Request) error {
		return &NotFoundError{Path: r.URL.Path}
	}))

	s.handler = s.instrument(mux)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server starting", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving HTTP: %w", err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}
