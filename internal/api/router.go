// Package api serves one in-memory scorecard session over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
)

// NewRouter builds the /api/v1 routes over session.
// mgr may be nil when run history is disabled.
func NewRouter(session *core.Session, mgr contract.HistoryManager, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))

	criteria := NewCriteriaHandler(session)
	entries := NewEntriesHandler(session)
	views := NewViewsHandler(session, mgr, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/criteria", criteria.List)
		r.Put("/criteria/{name}/weight", criteria.SetWeight)

		r.Get("/entries", entries.List)
		r.Post("/entries", entries.Create)
		r.Post("/imports", entries.Import)

		r.Get("/dashboard", views.Dashboard)
		r.Get("/compare/options", views.CompareOptions)
		r.Get("/compare", views.Compare)
		r.Get("/export/{format}", views.Export)
	})

	return r
}

// NewMetricsRouter serves health and Prometheus metrics on a separate listener.
func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
