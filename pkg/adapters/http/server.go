// Package http exposes tours, completion flags and the placement computation
// over a JSON API.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/internal/lookup"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/placement"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var rawSpec []byte

// Spec parses and validates the embedded OpenAPI document.
func Spec(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// WatchableLoader is a loader that can report changed tour IDs.
type WatchableLoader interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// Server serves the API.
type Server struct {
	Loader   ports.TourLoader
	Store    ports.CompletionStore
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLoader sets the source of tour definitions.
func WithLoader(l ports.TourLoader) Option {
	return func(s *Server) { s.Loader = l }
}

// WithStore sets where completion flags live. Defaults to process memory.
func WithStore(store ports.CompletionStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithGatherer exposes g on /metrics. Defaults to the global registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.Gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// NewHandler creates the HTTP handler. Requests to documented routes are
// validated against the embedded OpenAPI document before they reach a handler.
func NewHandler(opts ...Option) (http.Handler, error) {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	if s.Store == nil {
		s.Store = memory.NewStore()
	}
	if s.Gatherer == nil {
		s.Gatherer = prometheus.DefaultGatherer
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	doc, err := Spec(context.Background())
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(validateRequests(router, s.Logger))

		r.Get("/healthz", s.GetHealth)
		r.Get("/tours", s.ListTours)
		r.Get("/tours/{id}", s.GetTour)
		r.Get("/tours/{id}/completion", s.GetCompletion)
		r.Put("/tours/{id}/completion", s.MarkCompleted)
		r.Delete("/tours/{id}/completion", s.ResetCompletion)
		r.Post("/placement", s.ComputePlacement)
		r.Get("/events", s.SubscribeEvents)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func validateRequests(router routers.Router, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, params, err := router.FindRoute(r)
			if err != nil {
				// Undocumented routes fall through to chi's own 404/405.
				next.ServeHTTP(w, r)
				return
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				logger.Warn("Request rejected", "path", r.URL.Path, "err", err)
				writeError(w, http.StatusBadRequest, err.Error(), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type errorBody struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type completionBody struct {
	TourID    string `json:"tour_id"`
	Completed bool   `json:"completed"`
}

// PlacementRequest is the body of POST /placement.
type PlacementRequest struct {
	Target   domain.Rect     `json:"target"`
	Callout  domain.Size     `json:"callout"`
	Viewport domain.Viewport `json:"viewport"`
	Offset   *float64        `json:"offset,omitempty"`
	Margin   *float64        `json:"margin,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, suggestions []string) {
	writeJSON(w, status, errorBody{Error: msg, Suggestions: suggestions})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTours handles GET /tours.
func (s *Server) ListTours(w http.ResponseWriter, r *http.Request) {
	ids := []string{}
	if s.Loader != nil {
		listed, err := s.Loader.ListTours()
		if err != nil {
			s.Logger.Error("ListTours failed", "err", err)
			writeError(w, http.StatusInternalServerError, err.Error(), nil)
			return
		}
		ids = append(ids, listed...)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"tours": ids})
}

// GetTour handles GET /tours/{id}.
func (s *Server) GetTour(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.Loader == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%v: %s", domain.ErrTourNotFound, id), nil)
		return
	}

	tour, err := lookup.Tour(s.Loader, id)
	var nf *lookup.NotFoundError
	switch {
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, err.Error(), nf.Suggestions)
		return
	case err != nil:
		s.Logger.Error("GetTour failed", "tour", id, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if tour.Steps == nil {
		tour.Steps = []domain.Step{}
	}
	writeJSON(w, http.StatusOK, tour)
}

// GetCompletion handles GET /tours/{id}/completion.
func (s *Server) GetCompletion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, ok, err := s.Store.Get(r.Context(), domain.CompletionKey(id))
	if err != nil {
		s.Logger.Error("Completion lookup failed", "tour", id, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, completionBody{TourID: id, Completed: ok && v == domain.CompletionValue})
}

// MarkCompleted handles PUT /tours/{id}/completion.
func (s *Server) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	s.setCompletion(w, r, domain.CompletionValue)
}

// ResetCompletion handles DELETE /tours/{id}/completion.
func (s *Server) ResetCompletion(w http.ResponseWriter, r *http.Request) {
	s.setCompletion(w, r, "")
}

func (s *Server) setCompletion(w http.ResponseWriter, r *http.Request, value string) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Set(r.Context(), domain.CompletionKey(id), value); err != nil {
		s.Logger.Error("Completion write failed", "tour", id, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	s.Logger.Info("Completion updated", "tour", id, "completed", value == domain.CompletionValue)
	writeJSON(w, http.StatusOK, completionBody{TourID: id, Completed: value == domain.CompletionValue})
}

// ComputePlacement handles POST /placement.
func (s *Server) ComputePlacement(w http.ResponseWriter, r *http.Request) {
	var body PlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.Logger.Warn("ComputePlacement: invalid request body", "err", err)
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	in := placement.DefaultInput(body.Target, body.Callout, body.Viewport)
	if body.Offset != nil {
		in.Offset = *body.Offset
	}
	if body.Margin != nil {
		in.Margin = *body.Margin
	}
	writeJSON(w, http.StatusOK, placement.Compute(in))
}

// SubscribeEvents handles GET /events. Each change to a tour document is sent
// as one event carrying the tour ID, so pages can refetch it.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	watcher, ok := s.Loader.(WatchableLoader)
	if !ok {
		writeError(w, http.StatusNotImplemented, "tour source does not support watching", nil)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported", nil)
		return
	}

	events, err := watcher.Watch(r.Context())
	if err != nil {
		s.Logger.Error("Watch failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: tour_changed\ndata: %s\n\n", id)
			flusher.Flush()
		}
	}
}
