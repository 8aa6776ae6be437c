// Package logpublisher writes domain events to the structured log. It is
// used when no event bus is configured.
package logpublisher

import (
	"context"

	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/domain/events"
)

// Publisher logs each event at info level
type Publisher struct {
	logger *zap.Logger
}

// New creates a logging publisher
func New(logger *zap.Logger) *Publisher {
	return &Publisher{logger: logger.Named("events")}
}

// Publish logs a single event
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Info("Domain event",
		zap.String("eventID", event.GetEventID()),
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
		zap.Time("timestamp", event.GetTimestamp()),
	)
	return nil
}

// PublishBatch logs every event in order
func (p *Publisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, event := range domainEvents {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.EventPublisher = (*Publisher)(nil)
