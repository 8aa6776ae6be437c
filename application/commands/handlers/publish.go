package handlers

import (
	"context"

	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/domain/events"
)

// publish sends an event after a successful write. Failures are logged and
// never undo the write.
func publish(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, event events.DomainEvent) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
			zap.Error(err),
		)
	}
}
