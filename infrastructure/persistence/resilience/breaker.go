// Package resilience decorates repositories with a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// CodeCircuitOpen marks errors returned while the breaker rejects calls
const CodeCircuitOpen = "CIRCUIT_OPEN"

// BreakerConfig holds configuration for the circuit breaker
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns a default configuration for the circuit breaker
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// NewBreaker builds a gobreaker circuit breaker. Domain outcomes such as
// NOT_FOUND or a cancelled request are not counted as store failures.
func NewBreaker(cfg BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: isSuccessful,
	})
}

func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	return pkgerrors.IsNotFound(err) || pkgerrors.IsValidation(err)
}

func execute[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, pkgerrors.NewUnavailableError("store").WithCode(CodeCircuitOpen).WithCause(err)
		}
		return zero, err
	}
	return result.(T), nil
}

func executeErr(cb *gobreaker.CircuitBreaker, fn func() error) error {
	_, err := execute(cb, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// EntityRepository guards an entity repository with a circuit breaker
type EntityRepository struct {
	next ports.EntityRepository
	cb   *gobreaker.CircuitBreaker
}

// NewEntityRepository wraps next with cb
func NewEntityRepository(next ports.EntityRepository, cb *gobreaker.CircuitBreaker) *EntityRepository {
	return &EntityRepository{next: next, cb: cb}
}

func (r *EntityRepository) Save(ctx context.Context, e *entities.Entity) error {
	return executeErr(r.cb, func() error { return r.next.Save(ctx, e) })
}

func (r *EntityRepository) GetByID(ctx context.Context, id valueobjects.EntityID) (*entities.Entity, error) {
	return execute(r.cb, func() (*entities.Entity, error) { return r.next.GetByID(ctx, id) })
}

func (r *EntityRepository) GetByIDs(ctx context.Context, ids []valueobjects.EntityID) (map[valueobjects.EntityID]*entities.Entity, error) {
	return execute(r.cb, func() (map[valueobjects.EntityID]*entities.Entity, error) {
		return r.next.GetByIDs(ctx, ids)
	})
}

func (r *EntityRepository) List(ctx context.Context, filter ports.EntityFilter) ([]*entities.Entity, error) {
	return execute(r.cb, func() ([]*entities.Entity, error) { return r.next.List(ctx, filter) })
}

func (r *EntityRepository) Count(ctx context.Context, filter ports.EntityFilter) (int, error) {
	return execute(r.cb, func() (int, error) { return r.next.Count(ctx, filter) })
}

func (r *EntityRepository) Delete(ctx context.Context, id valueobjects.EntityID) error {
	return executeErr(r.cb, func() error { return r.next.Delete(ctx, id) })
}

// RelationshipRepository guards a relationship repository with a circuit breaker
type RelationshipRepository struct {
	next ports.RelationshipRepository
	cb   *gobreaker.CircuitBreaker
}

// NewRelationshipRepository wraps next with cb
func NewRelationshipRepository(next ports.RelationshipRepository, cb *gobreaker.CircuitBreaker) *RelationshipRepository {
	return &RelationshipRepository{next: next, cb: cb}
}

func (r *RelationshipRepository) Save(ctx context.Context, rel *entities.Relationship) error {
	return executeErr(r.cb, func() error { return r.next.Save(ctx, rel) })
}

func (r *RelationshipRepository) GetByID(ctx context.Context, id valueobjects.RelationshipID) (*entities.Relationship, error) {
	return execute(r.cb, func() (*entities.Relationship, error) { return r.next.GetByID(ctx, id) })
}

func (r *RelationshipRepository) List(ctx context.Context, filter ports.RelationshipFilter) ([]*entities.Relationship, error) {
	return execute(r.cb, func() ([]*entities.Relationship, error) { return r.next.List(ctx, filter) })
}

func (r *RelationshipRepository) Delete(ctx context.Context, id valueobjects.RelationshipID) error {
	return executeErr(r.cb, func() error { return r.next.Delete(ctx, id) })
}

// GraphReader guards a graph reader with a circuit breaker
type GraphReader struct {
	next ports.GraphReader
	cb   *gobreaker.CircuitBreaker
}

// NewGraphReader wraps next with cb
func NewGraphReader(next ports.GraphReader, cb *gobreaker.CircuitBreaker) *GraphReader {
	return &GraphReader{next: next, cb: cb}
}

func (g *GraphReader) ReadGraph(ctx context.Context) (*ports.GraphSnapshot, error) {
	return execute(g.cb, func() (*ports.GraphSnapshot, error) { return g.next.ReadGraph(ctx) })
}

func (g *GraphReader) ReadNeighborhood(ctx context.Context, id valueobjects.EntityID) (*ports.Neighborhood, error) {
	return execute(g.cb, func() (*ports.Neighborhood, error) { return g.next.ReadNeighborhood(ctx, id) })
}

var (
	_ ports.EntityRepository       = (*EntityRepository)(nil)
	_ ports.RelationshipRepository = (*RelationshipRepository)(nil)
	_ ports.GraphReader            = (*GraphReader)(nil)
)
