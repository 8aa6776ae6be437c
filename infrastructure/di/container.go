package di

import (
	"kgraph/application/commands/bus"
	"kgraph/application/ports"
	querybus "kgraph/application/queries/bus"
	domainconfig "kgraph/domain/config"
	"kgraph/infrastructure/config"
	pkgerrors "kgraph/pkg/errors"
	"kgraph/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *zap.Logger
	DomainConfig     *domainconfig.DomainConfig
	EntityRepo       ports.EntityRepository
	RelationshipRepo ports.RelationshipRepository
	Graph            ports.GraphReader
	Health           ports.HealthChecker
	Publisher        ports.EventPublisher
	CommandBus       *bus.CommandBus
	QueryBus         *querybus.QueryBus
	ErrorHandler     *pkgerrors.ErrorHandler
	Metrics          *observability.Collector
	Tracer           *observability.Tracer
}
