package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Topsis/internal/config"
	"github.com/MikeSquared-Agency/Topsis/internal/hermes"
	"github.com/MikeSquared-Agency/Topsis/internal/mailer"
	"github.com/MikeSquared-Agency/Topsis/internal/metrics"
	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

// NewRouter builds the API handler. h, m and rec may be nil.
func NewRouter(e *topsis.Engine, h hermes.Client, m mailer.Mailer, rec *metrics.Recorder, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(RequestLogger(logger))
	if cfg.Server.RateLimit > 0 {
		r.Use(RateLimitMiddleware(cfg.Server.RateLimit))
	}

	rankings := NewRankingsHandler(e, h, m, rec, cfg, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/rankings", rankings.Upload)
		r.Post("/rankings/json", rankings.JSON)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
