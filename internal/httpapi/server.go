// Package httpapi exposes the solver over HTTP.
//
//	GET  /healthz        liveness
//	GET  /metrics        Prometheus exposition
//	POST /solve          body: scenario document (YAML or JSON); reply: result JSON
//	GET  /solve/stream   websocket; first message: scenario document; then
//	                     improvement events followed by one result or error event
//
// Optimal results are cached in the configured store by scenario fingerprint.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/relocate/internal/logging"
	"github.com/katalvlaran/relocate/scenario"
	"github.com/katalvlaran/relocate/search"
	"github.com/katalvlaran/relocate/store"
)

const maxBody = 1 << 20

// Server wires the solver, the result store and the metrics registry.
type Server struct {
	log      *slog.Logger
	store    store.Store
	registry *prometheus.Registry
	metrics  *search.Metrics
	defaults []search.Option
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithStore enables result caching.
func WithStore(st store.Store) Option {
	return func(s *Server) { s.store = st }
}

// WithRegistry exposes metrics from reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithSearchOptions sets defaults applied before the scenario's own solver settings.
func WithSearchOptions(opts ...search.Option) Option {
	return func(s *Server) { s.defaults = append(s.defaults, opts...) }
}

// New builds the server and its routes.
func New(opts ...Option) (*Server, error) {
	s := &Server{log: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	m, err := search.NewMetrics(s.registry)
	if err != nil {
		return nil, fmt.Errorf("httpapi: %w", err)
	}
	s.metrics = m

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Post("/solve", s.handleSolve)
	r.Get("/solve/stream", s.handleStream)
	s.router = r

	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Response is the JSON reply of /solve and the payload of the stream's result event.
type Response struct {
	store.Record
	Cached bool `json:"cached"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	sc, err := scenario.Parse(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.solve(r.Context(), sc, nil)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// solve answers from the store when an optimal record exists, otherwise
// runs the search and stores optimal results.
func (s *Server) solve(ctx context.Context, sc *scenario.Scenario, onImprove func(search.Improvement)) (*Response, error) {
	b, err := sc.Board()
	if err != nil {
		return nil, err
	}
	fp := scenario.Fingerprint(b)
	log := s.log.With("fingerprint", fp, "scenario", sc.Name)

	if s.store != nil {
		rec, err := s.store.Get(ctx, fp)
		switch {
		case err == nil && rec.Complete:
			log.Debug("cache hit", "cost", rec.Cost)
			return &Response{Record: *rec, Cached: true}, nil
		case err != nil && !errors.Is(err, store.ErrNotFound):
			log.Warn("cache read failed", "error", err)
		}
	}

	own, err := sc.Options()
	if err != nil {
		return nil, err
	}
	opts := append([]search.Option{}, s.defaults...)
	opts = append(opts, own...)
	opts = append(opts, search.WithLogger(log), search.WithMetrics(s.metrics))
	if onImprove != nil {
		opts = append(opts, search.WithOnImprove(onImprove))
	}

	res, err := search.Solve(ctx, b, opts...)
	if err != nil {
		return nil, err
	}
	rec, err := store.NewRecord(fp, sc.Name, b.Topology(), res)
	if err != nil {
		return nil, err
	}
	if s.store != nil && rec.Complete {
		if err = s.store.Put(ctx, rec); err != nil {
			log.Warn("cache write failed", "error", err)
		}
	}

	return &Response{Record: *rec}, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, scenario.ErrInvalidScenario), errors.Is(err, search.ErrOptionViolation):
		return http.StatusBadRequest
	case errors.Is(err, search.ErrUnsolvable), errors.Is(err, search.ErrNoImprovement):
		return http.StatusUnprocessableEntity
	case errors.Is(err, search.ErrTimeLimit):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
