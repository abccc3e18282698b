// Package httpapi exposes the directory over HTTP: JSON render trees for the
// listing and company pages, raw records, facets, stats and the operational
// endpoints.
package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"placement-directory/internal/catalog"
	"placement-directory/internal/common/config"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/observability"
	builddetailview "placement-directory/internal/query/build-detail-view"
	filtercompanies "placement-directory/internal/query/filter-companies"
	parsecriteria "placement-directory/internal/query/parse-criteria"
	rankcompanies "placement-directory/internal/query/rank-companies"
	resolvecompany "placement-directory/internal/query/resolve-company"
)

// Pinger reports whether the backing connections are usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Server config.ServerConfig
	Query  config.QueryConfig
	App    config.AppConfig

	Catalog *catalog.Holder
	// Pinger is optional; /ready skips the dependency check without it.
	Pinger Pinger

	Logger        logger.Logger
	Observability *observability.Observability
}

type Server struct {
	config  config.ServerConfig
	app     config.AppConfig
	holder  *catalog.Holder
	pinger  Pinger
	logger  logger.Logger
	obs     *observability.Observability
	limiter *RateLimiter

	parse  *parsecriteria.Handler
	rank   *rankcompanies.Handler
	detail *builddetailview.Handler

	filterConfig  *filtercompanies.Config
	resolveConfig *resolvecompany.Config
	trendMode     string
	engine        atomic.Pointer[engine]
}

// engine bundles the handlers bound to one catalog instance. It is rebuilt
// lazily after a reload swaps the catalog.
type engine struct {
	catalog *catalog.Catalog
	filter  *filtercompanies.Handler
	resolve *resolvecompany.Handler
}

func New(opts Options) *Server {
	log := opts.Logger.WithFields(map[string]interface{}{"component": "httpapi"})

	trendMode := opts.Query.HiringTrendMode
	if trendMode == "" {
		trendMode = builddetailview.LoadConfig().TrendMode
	}

	filterConfig := filtercompanies.LoadConfig()
	if opts.Query.MemoizeSize != 0 {
		filterConfig.MemoizeSize = opts.Query.MemoizeSize
	}

	return &Server{
		config:        opts.Server,
		app:           opts.App,
		holder:        opts.Catalog,
		pinger:        opts.Pinger,
		logger:        log,
		obs:           opts.Observability,
		limiter:       NewRateLimiter(opts.Server.RateLimit.RequestsPerMinute, opts.Server.RateLimit.Burst),
		parse:         parsecriteria.NewHandler(parsecriteria.LoadConfig(), log),
		rank:          rankcompanies.NewHandler(rankcompanies.LoadConfig(), log),
		detail:        builddetailview.NewHandler(&builddetailview.Config{TrendMode: trendMode}, log),
		filterConfig:  filterConfig,
		resolveConfig: resolvecompany.LoadConfig(),
		trendMode:     trendMode,
	}
}

// Routes builds the router with the full middleware chain.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(RequestID)
	if s.config.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(s.accessLog)
	r.Use(s.recoverer)
	r.Use(s.cors)

	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		if d := time.Duration(s.config.WriteTimeout) * time.Millisecond; d > 0 {
			r.Use(middleware.Timeout(d))
		}

		r.Get("/company/{id}", s.companyPage)

		r.Route("/api", func(r chi.Router) {
			r.Get("/companies", s.listCompanies)
			r.Get("/companies/{id}", s.getCompany)
			r.Get("/companies/{id}/charts", s.companyCharts)
			r.Post("/listing/events", s.listingEvent)
			r.Get("/facets", s.facets)
			r.Get("/stats", s.stats)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{
			Code:      "ROUTE_NOT_FOUND",
			Message:   "Route not found",
			RequestID: RequestIDFrom(r.Context()),
		}})
	})

	return r
}

// current returns the engine for the live catalog, or nil before the first
// load.
func (s *Server) current() *engine {
	cat := s.holder.Get()
	if cat == nil {
		return nil
	}
	if e := s.engine.Load(); e != nil && e.catalog == cat {
		return e
	}
	e := &engine{
		catalog: cat,
		filter:  filtercompanies.NewHandler(s.filterConfig, cat.Companies(), s.logger),
		resolve: resolvecompany.NewHandler(s.resolveConfig, cat, s.logger),
	}
	s.engine.Store(e)
	return e
}
