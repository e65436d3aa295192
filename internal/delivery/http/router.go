// Package httpapi exposes the deal lifecycle over HTTP for chat front-ends and operators.
package httpapi

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const adminTokenHeader = "X-Admin-Token"

type RouterConfig struct {
	AdminToken string
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

func NewRouter(h *handlers.Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(cfg.Log), middleware.Recoverer)

	r.Get("/healthz", h.Health)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/deals", func(r chi.Router) {
			r.Post("/", h.SubmitDeal)
			r.Get("/", h.ListDeals)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetDeal)
				r.Post("/proposals", h.ProposeDecision)
				r.Post("/confirm", h.ConfirmDecision)
				r.Post("/cancel", h.CancelDecision)
			})
		})
		r.Get("/leaderboard", h.Leaderboard)
		r.Get("/members/{contributorID}", h.GetMember)
		r.Get("/balance", h.TreasuryBalance)

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminOnly(cfg.AdminToken))
			r.Post("/announcements/run", h.RunAnnouncementCheck)
			r.Post("/notify-test", h.TestReviewGroup)
			r.Post("/deals/{id}/announce", h.ForceAnnounce)
			r.Post("/deals/{id}/unannounce", h.ForceUnannounce)
			r.Post("/deals/{id}/reset", h.ResetToPending)
		})
	})

	return r
}

func adminOnly(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(adminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","message":"admin token required"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r)

			event := log.Debug()
			if ww.Status() >= http.StatusInternalServerError {
				event = log.Warn()
			}
			event.
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(started)).
				Msg("http request")
		})
	}
}

