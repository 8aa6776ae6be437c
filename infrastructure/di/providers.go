package di

import (
	"context"
	"errors"
	"fmt"

	"kgraph/application/commands"
	"kgraph/application/commands/bus"
	commandhandlers "kgraph/application/commands/handlers"
	"kgraph/application/ports"
	"kgraph/application/queries"
	querybus "kgraph/application/queries/bus"
	queryhandlers "kgraph/application/queries/handlers"
	domainconfig "kgraph/domain/config"
	"kgraph/infrastructure/config"
	"kgraph/infrastructure/messaging/eventbridge"
	"kgraph/infrastructure/messaging/logpublisher"
	"kgraph/infrastructure/persistence/memory"
	"kgraph/infrastructure/persistence/postgres"
	"kgraph/infrastructure/persistence/resilience"
	pkgerrors "kgraph/pkg/errors"
	"kgraph/pkg/observability"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// metricsNamespace prefixes every Prometheus series
const metricsNamespace = "kgraph"

// Store bundles the repositories of one storage backend
type Store struct {
	Entities      ports.EntityRepository
	Relationships ports.RelationshipRepository
	Graph         ports.GraphReader
	Health        ports.HealthChecker
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	var zapCfg zap.Config
	if cfg.IsProduction() || cfg.IsLambda() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}

	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideDomainConfig returns the business rules in effect
func ProvideDomainConfig() *domainconfig.DomainConfig {
	return domainconfig.DefaultDomainConfig()
}

// ProvideStore opens the configured storage backend. For postgres it runs the
// embedded migrations when enabled and wraps both repositories in a shared
// circuit breaker.
func ProvideStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Info("Using in-memory store")
		store := memory.NewStore()
		return &Store{
			Entities:      store.Entities(),
			Relationships: store.Relationships(),
			Graph:         store,
			Health:        store,
		}, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}

	var (
		entityRepo       ports.EntityRepository       = postgres.NewEntityRepository(pool)
		relationshipRepo ports.RelationshipRepository = postgres.NewRelationshipRepository(pool)
		graphReader      ports.GraphReader            = postgres.NewGraphReader(pool)
	)

	if cfg.Breaker.Enabled {
		cb := resilience.NewBreaker(breakerConfig(cfg.Breaker), logger)
		entityRepo = resilience.NewEntityRepository(entityRepo, cb)
		relationshipRepo = resilience.NewRelationshipRepository(relationshipRepo, cb)
		graphReader = resilience.NewGraphReader(graphReader, cb)
	}

	logger.Info("Using postgres store", zap.Int32("max_conns", cfg.Database.MaxConns))

	return &Store{
		Entities:      entityRepo,
		Relationships: relationshipRepo,
		Graph:         graphReader,
		Health:        postgres.NewHealthChecker(pool),
	}, pool.Close, nil
}

// breakerConfig overlays the configured breaker settings on the defaults.
// Zero values keep the default.
func breakerConfig(c config.BreakerConfig) resilience.BreakerConfig {
	bc := resilience.DefaultBreakerConfig("postgres")
	if c.MaxRequests > 0 {
		bc.MaxRequests = c.MaxRequests
	}
	if c.Interval > 0 {
		bc.Interval = c.Interval
	}
	if c.Timeout > 0 {
		bc.Timeout = c.Timeout
	}
	if c.FailureThreshold > 0 {
		bc.FailureThreshold = c.FailureThreshold
	}
	if c.MinRequests > 0 {
		bc.MinRequests = c.MinRequests
	}
	return bc
}

// ProvideEntityRepository exposes the entity repository of the store
func ProvideEntityRepository(store *Store) ports.EntityRepository {
	return store.Entities
}

// ProvideRelationshipRepository exposes the relationship repository of the store
func ProvideRelationshipRepository(store *Store) ports.RelationshipRepository {
	return store.Relationships
}

// ProvideGraphReader exposes the snapshot reader of the store
func ProvideGraphReader(store *Store) ports.GraphReader {
	return store.Graph
}

// ProvideHealthChecker exposes the readiness probe of the store
func ProvideHealthChecker(store *Store) ports.HealthChecker {
	return store.Health
}

// ProvideEventPublisher creates the EventBridge publisher when an event bus is
// configured and falls back to logging events otherwise
func ProvideEventPublisher(ctx context.Context, cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) (ports.EventPublisher, error) {
	if cfg.EventBusName == "" {
		return logpublisher.New(logger), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if tracer.Enabled() {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return eventbridge.NewPublisher(awseventbridge.NewFromConfig(awsCfg), cfg.EventBusName, logger), nil
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector(metricsNamespace)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(metricsNamespace, cfg.EnableTracing)
}

// ProvideErrorHandler creates the HTTP error handler. Stack traces are only
// exposed in development.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	entityRepo ports.EntityRepository,
	relationshipRepo ports.RelationshipRepository,
	publisher ports.EventPublisher,
	domainCfg *domainconfig.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger.Sugar()),
		bus.MetricsMiddleware(metrics),
	)

	entityHandler := commandhandlers.NewEntityCommandHandler(entityRepo, publisher, domainCfg, logger)
	relationshipHandler := commandhandlers.NewRelationshipCommandHandler(entityRepo, relationshipRepo, publisher, domainCfg, logger)

	return commandBus, errors.Join(
		commandBus.Register(commands.CreateEntityCommand{}, bus.Typed(entityHandler.CreateEntity)),
		commandBus.Register(commands.UpdateEntityCommand{}, bus.Typed(entityHandler.UpdateEntity)),
		commandBus.Register(commands.PatchEntityCommand{}, bus.Typed(entityHandler.PatchEntity)),
		commandBus.Register(commands.DeleteEntityCommand{}, bus.Typed(entityHandler.DeleteEntity)),
		commandBus.Register(commands.CreateRelationshipCommand{}, bus.Typed(relationshipHandler.CreateRelationship)),
		commandBus.Register(commands.UpdateRelationshipCommand{}, bus.Typed(relationshipHandler.UpdateRelationship)),
		commandBus.Register(commands.PatchRelationshipCommand{}, bus.Typed(relationshipHandler.PatchRelationship)),
		commandBus.Register(commands.DeleteRelationshipCommand{}, bus.Typed(relationshipHandler.DeleteRelationship)),
	)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	graphReader ports.GraphReader,
	entityRepo ports.EntityRepository,
	relationshipRepo ports.RelationshipRepository,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.NewTracingMiddleware(tracer),
		querybus.NewMetricsMiddleware(metrics),
	)

	graphHandler := queryhandlers.NewGetKnowledgeGraphHandler(graphReader, logger)
	subgraphHandler := queryhandlers.NewGetEntitySubgraphHandler(graphReader, logger)
	entityHandler := queryhandlers.NewEntityQueryHandler(entityRepo)
	relationshipHandler := queryhandlers.NewRelationshipQueryHandler(relationshipRepo)

	return queryBus, errors.Join(
		queryBus.Register(queries.GetKnowledgeGraphQuery{}, querybus.Typed(graphHandler.Handle)),
		queryBus.Register(queries.GetEntitySubgraphQuery{}, querybus.Typed(subgraphHandler.Handle)),
		queryBus.Register(queries.GetEntityQuery{}, querybus.Typed(entityHandler.GetEntity)),
		queryBus.Register(queries.ListEntitiesQuery{}, querybus.Typed(entityHandler.ListEntities)),
		queryBus.Register(queries.SearchEntitiesQuery{}, querybus.Typed(entityHandler.SearchEntities)),
		queryBus.Register(queries.GetRelationshipQuery{}, querybus.Typed(relationshipHandler.GetRelationship)),
		queryBus.Register(queries.ListRelationshipsQuery{}, querybus.Typed(relationshipHandler.ListRelationships)),
	)
}
