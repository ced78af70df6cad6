// Package server exposes the dashboard pages, the gauge image and a JSON API over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/dashboard"
)

type Options struct {
	Listen          string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Version         string
}

type Server struct {
	opts     Options
	store    *catalog.Store
	logger   *slog.Logger
	pages    dashboard.Renderer
	router   *mux.Router
	registry *prometheus.Registry
	metrics  *metrics
}

func New(store *catalog.Store, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		opts:     opts,
		store:    store,
		logger:   logger,
		pages:    dashboard.Renderer{Version: opts.Version},
		registry: reg,
		metrics:  newMetrics(reg),
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.instrument)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/tickets", s.handleTickets).Methods(http.MethodGet)
	r.HandleFunc("/tickets/{id}", s.handleTicket).Methods(http.MethodGet)
	r.HandleFunc("/standards", s.handleStandards).Methods(http.MethodGet)
	r.HandleFunc("/reports", s.handleReports).Methods(http.MethodGet)
	r.HandleFunc("/gauge.svg", s.handleGaugeSVG).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/gauge", s.handleAPIGauge).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.handleAPISummary).Methods(http.MethodGet)
	api.HandleFunc("/instances", s.handleAPIInstances).Methods(http.MethodGet)
	api.HandleFunc("/tickets", s.handleAPITickets).Methods(http.MethodGet)
	api.HandleFunc("/tickets/{id}", s.handleAPITicket).Methods(http.MethodGet)
	api.HandleFunc("/standards", s.handleAPIStandards).Methods(http.MethodGet)
	api.HandleFunc("/reports", s.handleAPIReports).Methods(http.MethodGet)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.NotFoundHandler = s.instrument(http.HandlerFunc(s.handleNotFound))
	r.MethodNotAllowedHandler = s.instrument(http.HandlerFunc(s.handleMethodNotAllowed))
	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String(), "version", s.opts.Version)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down", "timeout", s.opts.ShutdownTimeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
