// Package app assembles the library services and their HTTP surface.
package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	catalogHandler "libraria/internal/catalog/handler"
	catalogService "libraria/internal/catalog/service"
	catalogStore "libraria/internal/catalog/store"
	lendingHandler "libraria/internal/lending/handler"
	lendingService "libraria/internal/lending/service"
	lendingStore "libraria/internal/lending/store"
	memberHandler "libraria/internal/membership/handler"
	memberService "libraria/internal/membership/service"
	memberStore "libraria/internal/membership/store"
	"libraria/internal/platform/metrics"
	"libraria/internal/platform/middleware"
	"libraria/pkg/platform/httputil"
)

const requestTimeout = 30 * time.Second

// Library holds one independent set of repositories and the services over
// them.
type Library struct {
	Catalog *catalogService.Service
	Members *memberService.Service
	Lending *lendingService.Service
}

// NewLibrary builds fresh, empty repositories. m may be nil.
func NewLibrary(logger *slog.Logger, m *metrics.Metrics, lendingOpts ...lendingService.Option) *Library {
	catalog := catalogService.New(catalogStore.New(),
		catalogService.WithLogger(logger),
		catalogService.WithMetrics(m),
	)
	members := memberService.New(memberStore.New(),
		memberService.WithLogger(logger),
		memberService.WithMetrics(m),
	)
	opts := append([]lendingService.Option{
		lendingService.WithLogger(logger),
		lendingService.WithMetrics(m),
	}, lendingOpts...)
	lending := lendingService.New(catalog, members, lendingStore.New(), opts...)
	return &Library{Catalog: catalog, Members: members, Lending: lending}
}

// NewRouter mounts every library endpoint behind the shared middleware
// chain. metricsHandler serves GET /metrics when non-nil.
func NewRouter(lib *Library, logger *slog.Logger, m *metrics.Metrics, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.LatencyMiddleware(m))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	catalogHandler.New(lib.Catalog, logger).Register(r)
	memberHandler.New(lib.Members, logger).Register(r)
	lendingHandler.New(lib.Lending, logger).Register(r)
	return r
}
