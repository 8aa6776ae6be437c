package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kgraph/application/ports"
	"kgraph/application/ports/mocks"
	"kgraph/application/queries"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/projection"
	"kgraph/domain/core/valueobjects"
	"kgraph/infrastructure/persistence/memory"
	pkgerrors "kgraph/pkg/errors"
)

var fixedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func entity(id int64, name string, t valueobjects.EntityType) *entities.Entity {
	return entities.ReconstructEntity(valueobjects.EntityID(id), name, t, "", fixedTime)
}

func relationship(id, source, target int64, t valueobjects.RelationshipType) *entities.Relationship {
	return entities.ReconstructRelationship(
		valueobjects.RelationshipID(id),
		valueobjects.EntityID(source),
		valueobjects.EntityID(target),
		t, "", 0.9, fixedTime,
	)
}

func TestGetKnowledgeGraphHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	reader := new(mocks.MockGraphReader)

	ada := entity(1, "Ada", valueobjects.EntityTypePerson)
	acme := entity(2, "Acme", valueobjects.EntityTypeOrganization)
	reader.On("ReadGraph", ctx).Return(&ports.GraphSnapshot{
		Entities:      []*entities.Entity{ada, acme},
		Relationships: []*entities.Relationship{relationship(10, 1, 2, valueobjects.RelationshipWorksFor)},
	}, nil)

	handler := NewGetKnowledgeGraphHandler(reader, zap.NewNop())
	graph, err := handler.Handle(ctx, queries.GetKnowledgeGraphQuery{})

	require.NoError(t, err)
	require.Len(t, graph.Nodes, 2)
	require.Len(t, graph.Edges, 1)
	assert.Equal(t, 3, graph.Nodes[0].Size)
	assert.Equal(t, 2, graph.Nodes[1].Size)
	assert.Equal(t, "Works For", graph.Edges[0].Label)
	reader.AssertExpectations(t)
}

func TestGetKnowledgeGraphHandler_Handle_ReadFailure(t *testing.T) {
	ctx := context.Background()
	reader := new(mocks.MockGraphReader)
	reader.On("ReadGraph", ctx).Return(nil, errors.New("connection refused"))

	handler := NewGetKnowledgeGraphHandler(reader, zap.NewNop())
	graph, err := handler.Handle(ctx, queries.GetKnowledgeGraphQuery{})

	assert.Nil(t, graph)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read graph")
}

func TestGetKnowledgeGraphHandler_Handle_DanglingRelationship(t *testing.T) {
	ctx := context.Background()
	reader := new(mocks.MockGraphReader)
	reader.On("ReadGraph", ctx).Return(&ports.GraphSnapshot{
		Entities:      []*entities.Entity{entity(1, "Ada", valueobjects.EntityTypePerson)},
		Relationships: []*entities.Relationship{relationship(10, 1, 99, valueobjects.RelationshipWorksFor)},
	}, nil)

	handler := NewGetKnowledgeGraphHandler(reader, zap.NewNop())
	graph, err := handler.Handle(ctx, queries.GetKnowledgeGraphQuery{})

	assert.Nil(t, graph)
	assert.True(t, pkgerrors.IsIntegrity(err))
}

func TestGetEntitySubgraphHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	reader := new(mocks.MockGraphReader)

	center := entity(1, "Ada", valueobjects.EntityTypePerson)
	acme := entity(2, "Acme", valueobjects.EntityTypeOrganization)
	london := entity(3, "London", valueobjects.EntityTypeLocation)
	reader.On("ReadNeighborhood", ctx, center.ID()).Return(&ports.Neighborhood{
		Center:   center,
		Outgoing: []*entities.Relationship{relationship(10, 1, 2, valueobjects.RelationshipWorksFor)},
		Incoming: []*entities.Relationship{relationship(11, 3, 1, valueobjects.RelationshipRelatedTo)},
		Neighbors: map[valueobjects.EntityID]*entities.Entity{
			2: acme,
			3: london,
		},
	}, nil)

	handler := NewGetEntitySubgraphHandler(reader, zap.NewNop())
	subgraph, err := handler.Handle(ctx, queries.GetEntitySubgraphQuery{EntityID: center.ID()})

	require.NoError(t, err)
	assert.Equal(t, "Ada", subgraph.CenterEntity.Name)
	require.Len(t, subgraph.Nodes, 3)
	assert.True(t, subgraph.Nodes[0].Center)
	assert.Equal(t, projection.CenterNodeSize, subgraph.Nodes[0].Size)
	require.Len(t, subgraph.Edges, 2)
	assert.Equal(t, projection.DirectionOutgoing, subgraph.Edges[0].Direction)
	assert.Equal(t, projection.DirectionIncoming, subgraph.Edges[1].Direction)
	reader.AssertExpectations(t)
}

func TestGetEntitySubgraphHandler_Handle_EntityNotFound(t *testing.T) {
	ctx := context.Background()
	reader := new(mocks.MockGraphReader)
	reader.On("ReadNeighborhood", ctx, valueobjects.EntityID(42)).Return(nil, pkgerrors.NewNotFoundError("entity"))

	handler := NewGetEntitySubgraphHandler(reader, zap.NewNop())
	subgraph, err := handler.Handle(ctx, queries.GetEntitySubgraphQuery{EntityID: 42})

	assert.Nil(t, subgraph)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Equal(t, "entity not found", pkgerrors.GetAppError(err).Message)
}

func TestGetEntitySubgraphHandler_Handle_IsolatedEntity(t *testing.T) {
	ctx := context.Background()
	reader := new(mocks.MockGraphReader)

	center := entity(5, "1999", valueobjects.EntityTypeTime)
	reader.On("ReadNeighborhood", ctx, center.ID()).Return(&ports.Neighborhood{
		Center:    center,
		Neighbors: map[valueobjects.EntityID]*entities.Entity{},
	}, nil)

	handler := NewGetEntitySubgraphHandler(reader, zap.NewNop())
	subgraph, err := handler.Handle(ctx, queries.GetEntitySubgraphQuery{EntityID: center.ID()})

	require.NoError(t, err)
	require.Len(t, subgraph.Nodes, 1)
	assert.Equal(t, projection.CenterNodeSize, subgraph.Nodes[0].Size)
	assert.NotNil(t, subgraph.Edges)
	assert.Empty(t, subgraph.Edges)
}

// A write committed between the entity and relationship reads must not
// surface as a dangling edge when both come from the same snapshot.
func TestGetKnowledgeGraphHandler_Handle_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	ents, rels := store.Entities(), store.Relationships()

	seed, err := entities.NewEntity("Ada", valueobjects.EntityTypePerson, "", nil)
	require.NoError(t, err)
	require.NoError(t, ents.Save(ctx, seed))

	handler := NewGetKnowledgeGraphHandler(store, zap.NewNop())

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < 200; i++ {
			target, err := entities.NewEntity(fmt.Sprintf("Org %d", i), valueobjects.EntityTypeOrganization, "", nil)
			if err != nil {
				return err
			}
			if err := ents.Save(ctx, target); err != nil {
				return err
			}
			rel, err := entities.NewRelationship(seed.ID(), target.ID(), valueobjects.RelationshipWorksFor, "", 1, nil)
			if err != nil {
				return err
			}
			if err := rels.Save(ctx, rel); err != nil {
				return err
			}
		}
		return nil
	})
	for r := 0; r < 4; r++ {
		g.Go(func() error {
			for i := 0; i < 200; i++ {
				if _, err := handler.Handle(ctx, queries.GetKnowledgeGraphQuery{}); err != nil {
					return err
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}
