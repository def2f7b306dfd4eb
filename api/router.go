// Package api exposes the program finder over HTTP: catalog browsing,
// searches, and per-session schedules.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MakerMama/afterschool-finder/api/session"
	"github.com/MakerMama/afterschool-finder/core/logger"
	"github.com/MakerMama/afterschool-finder/core/search"
	"github.com/MakerMama/afterschool-finder/core/searchlog"
	"github.com/MakerMama/afterschool-finder/infra/metrics"
)

// Options tunes the router. Zero values disable the related feature.
type Options struct {
	// RequestsPerMinute limits each client IP.
	RequestsPerMinute int
	// AllowedOrigins enables CORS for browser front ends.
	AllowedOrigins []string
	// AdminToken protects the search log endpoint.
	AdminToken string
	// Gatherer serves /metrics.
	Gatherer prometheus.Gatherer
	// Logs backs GET /api/searches.
	Logs   searchlog.LogStore
	Logger logger.Logger
}

// Handler serves the API routes.
type Handler struct {
	search   *search.Service
	sessions *session.Registry
	log      logger.Logger
}

// NewRouter builds the HTTP routes.
func NewRouter(svc *search.Service, sessions *session.Registry, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Logs == nil {
		opts.Logs = searchlog.NopStore{}
	}
	h := &Handler{search: svc, sessions: sessions, log: opts.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}
	if opts.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(opts.RequestsPerMinute, time.Minute))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "programs": svc.Catalog().Len()})
	})
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(opts.Gatherer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog/summary", h.catalogSummary)
		r.Get("/catalog/categories", h.categories)
		r.Get("/time-options", h.timeOptions)
		r.Get("/programs/{id}", h.program)
		r.Post("/search", h.runSearch)
		r.Get("/schedule-names/hints", h.nameHints)
		r.Method(http.MethodGet, "/searches", NewLogHandler(opts.Logs, opts.AdminToken))

		r.Post("/sessions", h.createSession)
		r.Route("/sessions/{sid}", func(r chi.Router) {
			r.Use(h.withSession)
			r.Get("/family", h.family)
			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.listSchedules)
				r.Post("/", h.createSchedule)
				r.Get("/{name}", h.getSchedule)
				r.Delete("/{name}", h.deleteSchedule)
				r.Get("/{name}/conflicts", h.conflicts)
				r.Post("/{name}/entries", h.addEntry)
				r.Delete("/{name}/entries/{id}", h.removeEntry)
			})
		})
	})
	return r
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debugw("http request", map[string]any{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"ms":         time.Since(start).Milliseconds(),
				"request_id": middleware.GetReqID(r.Context()),
			})
		})
	}
}
