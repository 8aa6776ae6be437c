package rest

import (
	"context"
	"net/http"
	"time"

	"kgraph/application/commands/bus"
	"kgraph/application/ports"
	querybus "kgraph/application/queries/bus"
	domainconfig "kgraph/domain/config"
	"kgraph/interfaces/http/rest/handlers"
	"kgraph/interfaces/http/rest/middleware"
	"kgraph/pkg/common"
	pkgerrors "kgraph/pkg/errors"
	"kgraph/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// readyTimeout bounds the store ping of the readiness probe
const readyTimeout = 2 * time.Second

// Options toggles the optional parts of the HTTP surface
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
	EnableMetrics  bool
}

// Dependencies are the collaborators the router dispatches to
type Dependencies struct {
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	ErrorHandler *pkgerrors.ErrorHandler
	Health       ports.HealthChecker
	DomainConfig *domainconfig.DomainConfig
	Metrics      *observability.Collector
	Tracer       *observability.Tracer
	Logger       *zap.Logger
}

// Router creates and configures the HTTP router
type Router struct {
	deps Dependencies
	opts Options
}

// NewRouter creates a new router instance
func NewRouter(deps Dependencies, opts Options) *Router {
	if deps.DomainConfig == nil {
		deps.DomainConfig = domainconfig.DefaultDomainConfig()
	}
	if deps.Tracer == nil {
		deps.Tracer = observability.NewTracer("kgraph", false)
	}
	return &Router{deps: deps, opts: opts}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(rt.deps.Tracer.Middleware)
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.deps.ErrorHandler.Middleware)
	router.Use(middleware.Logger(rt.deps.Logger))
	if rt.deps.Metrics != nil {
		router.Use(middleware.Metrics(rt.deps.Metrics))
	}
	router.Use(chimiddleware.StripSlashes)

	if rt.opts.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.deps.ErrorHandler.HandleStatus(w, r, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.deps.ErrorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.opts.EnableMetrics && rt.deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.deps.Metrics.Handler())
	}

	graphHandler := handlers.NewGraphHandler(rt.deps.QueryBus, rt.deps.ErrorHandler, rt.deps.Logger)
	router.Get("/knowledge-graph", graphHandler.KnowledgeGraph)
	router.Get("/entity-subgraph/{entityID:[0-9]+}", graphHandler.EntitySubgraph)

	entityHandler := handlers.NewEntityHandler(
		rt.deps.CommandBus, rt.deps.QueryBus, rt.deps.DomainConfig, rt.deps.ErrorHandler, rt.deps.Logger,
	)
	router.Route("/entities", func(r chi.Router) {
		r.Get("/", entityHandler.ListEntities)
		r.Post("/", entityHandler.CreateEntity)
		r.Get("/search", entityHandler.SearchEntities)
		r.Get("/{entityID:[0-9]+}", entityHandler.GetEntity)
		r.Put("/{entityID:[0-9]+}", entityHandler.UpdateEntity)
		r.Patch("/{entityID:[0-9]+}", entityHandler.PatchEntity)
		r.Delete("/{entityID:[0-9]+}", entityHandler.DeleteEntity)
	})

	relationshipHandler := handlers.NewRelationshipHandler(
		rt.deps.CommandBus, rt.deps.QueryBus, rt.deps.ErrorHandler, rt.deps.Logger,
	)
	router.Route("/relationships", func(r chi.Router) {
		r.Get("/", relationshipHandler.ListRelationships)
		r.Post("/", relationshipHandler.CreateRelationship)
		r.Get("/by_type", relationshipHandler.ByType)
		r.Get("/between_entities", relationshipHandler.BetweenEntities)
		r.Get("/{relationshipID:[0-9]+}", relationshipHandler.GetRelationship)
		r.Put("/{relationshipID:[0-9]+}", relationshipHandler.UpdateRelationship)
		r.Patch("/{relationshipID:[0-9]+}", relationshipHandler.PatchRelationship)
		r.Delete("/{relationshipID:[0-9]+}", relationshipHandler.DeleteRelationship)
	})
	router.Get("/relationship-types", relationshipHandler.RelationshipTypes)

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	_ = common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck reports ready once the store answers a ping
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.deps.Health != nil {
		ctx, cancel := context.WithTimeout(req.Context(), readyTimeout)
		defer cancel()

		if err := rt.deps.Health.Ping(ctx); err != nil {
			rt.deps.Logger.Warn("Readiness check failed", zap.Error(err))
			rt.deps.ErrorHandler.HandleStatus(w, req, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}

	_ = common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
