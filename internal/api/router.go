// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/seqmine/internal/cache"
	"github.com/tomtom215/seqmine/internal/gsp"
	"github.com/tomtom215/seqmine/internal/middleware"
	"github.com/tomtom215/seqmine/internal/store"
)

// RunStore is the subset of *store.Store the API uses.
type RunStore interface {
	SaveRun(ctx context.Context, run *store.Run) error
	GetRun(ctx context.Context, id string) (*store.Run, error)
	ListRuns(ctx context.Context) ([]store.Summary, error)
	DeleteRun(ctx context.Context, id string) error
}

// Config configures the handlers and middleware.
type Config struct {
	// Mining supplies defaults for fields a mine request leaves unset.
	Mining gsp.Config

	// CORSOrigins lists allowed browser origins. Empty disables CORS.
	CORSOrigins []string

	// MineRateLimit caps mine requests per client IP and minute. 0 disables.
	MineRateLimit int

	// MaxBodyBytes caps request bodies. Default: 32 MiB.
	MaxBodyBytes int64

	// RunCacheSize bounds the decoded runs kept in memory. Default: 64.
	RunCacheSize int

	// RunCacheTTL is how long a decoded run stays cached. Default: 10m.
	RunCacheTTL time.Duration

	// Version is reported by the health endpoint.
	Version string
}

// Handler holds the API dependencies.
type Handler struct {
	config    Config
	store     RunStore
	runs      *cache.LRU[*store.Run]
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates the API handler. runs may be nil, in which case the
// run endpoints answer 503 and mine requests cannot be saved.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(cfg Config, runs RunStore, logger zerolog.Logger) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 32 << 20
	}
	return &Handler{
		config:    cfg,
		store:     runs,
		runs:      cache.New[*store.Run](cfg.RunCacheSize, cfg.RunCacheTTL),
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}
}

// Router builds the chi route tree.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	if len(h.config.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.config.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         86400,
		}))
	}

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Compression)
		r.Use(h.limitBody)

		r.Get("/health", h.Health)
		r.With(h.mineRateLimit()).Post("/mine", h.Mine)

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", h.ListRuns)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetRun)
				r.Delete("/", h.DeleteRun)
				r.Get("/patterns", h.ListPatterns)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "no such endpoint", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
	return r
}

func (h *Handler) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// mineRateLimit limits mining per client IP. chimiddleware.RealIP has
// already rewritten RemoteAddr.
func (h *Handler) mineRateLimit() func(http.Handler) http.Handler {
	if h.config.MineRateLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		h.config.MineRateLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many mine requests", nil)
		}),
	)
}
