// Package server exposes appraisals and the elevator panel over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/LanS10t/geminiMiner/internal/appraisal"
	"github.com/LanS10t/geminiMiner/internal/elevator"
	"github.com/LanS10t/geminiMiner/internal/logging"
	"github.com/LanS10t/geminiMiner/internal/metrics"
	"github.com/LanS10t/geminiMiner/internal/mineral"
)

// Appraiser is the slice of appraisal.Dispatcher the API needs.
type Appraiser interface {
	AppraiseDetailed(ctx context.Context, inv mineral.Inventory, useDelegated bool) appraisal.Appraisal
}

// RouterConfig aggregates the dependencies of the route tree.
type RouterConfig struct {
	Appraiser Appraiser
	// UseDelegated is the default when a request omits use_delegated.
	UseDelegated bool

	Depths  []int
	Unlocks elevator.UnlockSource

	Metrics *metrics.Metrics
	Logger  logging.Logger
}

// NewRouter builds the HTTP handler tree.
func NewRouter(cfg RouterConfig) http.Handler {
	h := &handlers{cfg: cfg, log: logging.OrNop(cfg.Logger).Named("http")}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogging(h.log))

	r.Get("/healthz", h.health)
	r.Handle("/metrics", cfg.Metrics.Handler())

	r.Route("/v1", func(api chi.Router) {
		api.Post("/appraisals", h.appraise)
		api.Route("/elevator", func(er chi.Router) {
			er.Get("/", h.floors)
			er.Post("/travel", h.travel)
		})
	})
	return r
}

// requestLogging logs one line per request; 5xx at Error, 4xx at Warn.
func requestLogging(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", ww.Status()),
				logging.Duration("duration", time.Since(start)),
				logging.String("request_id", chimw.GetReqID(r.Context())),
			}
			switch {
			case ww.Status() >= 500:
				log.Error("request", fields...)
			case ww.Status() >= 400:
				log.Warn("request", fields...)
			default:
				log.Debug("request", fields...)
			}
		})
	}
}
