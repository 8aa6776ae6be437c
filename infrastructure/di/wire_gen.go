//go:build !wireinject
// +build !wireinject

package di

import (
	"context"

	"kgraph/infrastructure/config"
)

// InitializeContainer creates a fully wired container. The returned cleanup
// closes the store and flushes the logger.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	logger, cleanup, err := ProvideLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, cleanup2, err := ProvideStore(ctx, cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	entityRepository := ProvideEntityRepository(store)
	relationshipRepository := ProvideRelationshipRepository(store)
	graphReader := ProvideGraphReader(store)
	healthChecker := ProvideHealthChecker(store)
	tracer := ProvideTracer(cfg)
	eventPublisher, err := ProvideEventPublisher(ctx, cfg, tracer, logger)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	collector := ProvideMetrics()
	domainConfig := ProvideDomainConfig()
	commandBus, err := ProvideCommandBus(entityRepository, relationshipRepository, eventPublisher, domainConfig, collector, logger)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	queryBus, err := ProvideQueryBus(graphReader, entityRepository, relationshipRepository, collector, tracer, logger)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	errorHandler := ProvideErrorHandler(cfg, logger)
	container := &Container{
		Config:           cfg,
		Logger:           logger,
		DomainConfig:     domainConfig,
		EntityRepo:       entityRepository,
		RelationshipRepo: relationshipRepository,
		Graph:            graphReader,
		Health:           healthChecker,
		Publisher:        eventPublisher,
		CommandBus:       commandBus,
		QueryBus:         queryBus,
		ErrorHandler:     errorHandler,
		Metrics:          collector,
		Tracer:           tracer,
	}
	return container, func() {
		cleanup2()
		cleanup()
	}, nil
}
