// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kgraph/application/ports"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	"kgraph/domain/events"
)

// MockEntityRepository is a mock implementation of ports.EntityRepository
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) Save(ctx context.Context, entity *entities.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) GetByID(ctx context.Context, id valueobjects.EntityID) (*entities.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Entity), args.Error(1)
}

func (m *MockEntityRepository) GetByIDs(ctx context.Context, ids []valueobjects.EntityID) (map[valueobjects.EntityID]*entities.Entity, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[valueobjects.EntityID]*entities.Entity), args.Error(1)
}

func (m *MockEntityRepository) List(ctx context.Context, filter ports.EntityFilter) ([]*entities.Entity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entity), args.Error(1)
}

func (m *MockEntityRepository) Count(ctx context.Context, filter ports.EntityFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockEntityRepository) Delete(ctx context.Context, id valueobjects.EntityID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGraphReader is a mock implementation of ports.GraphReader
type MockGraphReader struct {
	mock.Mock
}

func (m *MockGraphReader) ReadGraph(ctx context.Context) (*ports.GraphSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.GraphSnapshot), args.Error(1)
}

func (m *MockGraphReader) ReadNeighborhood(ctx context.Context, id valueobjects.EntityID) (*ports.Neighborhood, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Neighborhood), args.Error(1)
}

// MockRelationshipRepository is a mock implementation of ports.RelationshipRepository
type MockRelationshipRepository struct {
	mock.Mock
}

func (m *MockRelationshipRepository) Save(ctx context.Context, rel *entities.Relationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockRelationshipRepository) GetByID(ctx context.Context, id valueobjects.RelationshipID) (*entities.Relationship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Relationship), args.Error(1)
}

func (m *MockRelationshipRepository) List(ctx context.Context, filter ports.RelationshipFilter) ([]*entities.Relationship, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Relationship), args.Error(1)
}

func (m *MockRelationshipRepository) Delete(ctx context.Context, id valueobjects.RelationshipID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

var (
	_ ports.EntityRepository       = (*MockEntityRepository)(nil)
	_ ports.RelationshipRepository = (*MockRelationshipRepository)(nil)
	_ ports.GraphReader            = (*MockGraphReader)(nil)
	_ ports.EventPublisher         = (*MockEventPublisher)(nil)
)
