package projection

import (
	"encoding/json"
	"testing"
	"time"

	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entity(id int64, name string, t valueobjects.EntityType) *entities.Entity {
	return entities.ReconstructEntity(valueobjects.EntityID(id), name, t, name+" description", time.Unix(0, 0))
}

func relationship(id, source, target int64, t valueobjects.RelationshipType) *entities.Relationship {
	return entities.ReconstructRelationship(
		valueobjects.RelationshipID(id),
		valueobjects.EntityID(source),
		valueobjects.EntityID(target),
		t,
		"",
		0.9,
		time.Unix(0, 0),
	)
}

func neighborsOf(ents ...*entities.Entity) map[valueobjects.EntityID]*entities.Entity {
	m := make(map[valueobjects.EntityID]*entities.Entity, len(ents))
	for _, e := range ents {
		m[e.ID()] = e
	}
	return m
}

func TestSizeFor(t *testing.T) {
	cases := map[valueobjects.EntityType]int{
		valueobjects.EntityTypePerson:       3,
		valueobjects.EntityTypeOrganization: 2,
		valueobjects.EntityTypeEvent:        2,
		valueobjects.EntityTypeLocation:     2,
		valueobjects.EntityTypeTime:         1,
		valueobjects.EntityTypeOther:        1,
		"concept":                           1,
		"":                                  1,
	}
	for entityType, want := range cases {
		assert.Equal(t, want, SizeFor(entityType), "entity type %q", entityType)
	}
}

func TestFullGraph_EmptyStore(t *testing.T) {
	graph, err := FullGraph(nil, nil)
	require.NoError(t, err)

	raw, err := json.Marshal(graph)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes": [], "edges": []}`, string(raw))
}

func TestFullGraph_OneNodePerEntityOneEdgePerRelationship(t *testing.T) {
	a := entity(1, "Ada", valueobjects.EntityTypePerson)
	b := entity(2, "Acme", valueobjects.EntityTypeOrganization)
	c := entity(3, "1999", valueobjects.EntityTypeTime)
	d := entity(4, "Widget", "product")

	rels := []*entities.Relationship{
		relationship(10, 1, 2, valueobjects.RelationshipWorksFor),
		relationship(11, 2, 3, "legacy_code"),
	}

	graph, err := FullGraph([]*entities.Entity{a, b, c, d}, rels)
	require.NoError(t, err)

	require.Len(t, graph.Nodes, 4)
	require.Len(t, graph.Edges, 2)

	assert.Equal(t, Node{ID: 1, Label: "Ada", Type: "person", Description: "Ada description", Size: 3}, graph.Nodes[0])
	assert.Equal(t, 2, graph.Nodes[1].Size)
	assert.Equal(t, 1, graph.Nodes[2].Size)
	assert.Equal(t, 1, graph.Nodes[3].Size)

	assert.Equal(t, Edge{Source: 1, Target: 2, Label: "Works For", Confidence: 0.9}, graph.Edges[0])
	assert.Equal(t, "legacy_code", graph.Edges[1].Label)

	raw, err := json.Marshal(graph.Edges[0])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "direction")

	for _, n := range graph.Nodes {
		assert.False(t, n.Center)
	}
}

func TestFullGraph_DanglingRelationshipFails(t *testing.T) {
	a := entity(1, "Ada", valueobjects.EntityTypePerson)
	rels := []*entities.Relationship{relationship(10, 1, 99, valueobjects.RelationshipRelatedTo)}

	graph, err := FullGraph([]*entities.Entity{a}, rels)

	assert.Nil(t, graph)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsIntegrity(err))
	assert.Contains(t, err.Error(), "missing entity 99")
}

func TestEgoSubgraph_OutgoingAndIncoming(t *testing.T) {
	a := entity(1, "A", valueobjects.EntityTypePerson)
	b := entity(2, "B", valueobjects.EntityTypeOrganization)
	c := entity(3, "C", valueobjects.EntityTypeLocation)

	outgoing := []*entities.Relationship{relationship(10, 1, 2, valueobjects.RelationshipWorksFor)}
	incoming := []*entities.Relationship{relationship(11, 3, 1, valueobjects.RelationshipLocatedIn)}

	sub, err := EgoSubgraph(a, outgoing, incoming, neighborsOf(b, c))
	require.NoError(t, err)

	assert.Equal(t, CenterEntity{ID: 1, Name: "A", Type: "person"}, sub.CenterEntity)

	require.Len(t, sub.Nodes, 3)
	assert.Equal(t, Node{ID: 1, Label: "A", Type: "person", Description: "A description", Size: 3, Center: true}, sub.Nodes[0])
	assert.Equal(t, valueobjects.EntityID(2), sub.Nodes[1].ID)
	assert.Equal(t, 2, sub.Nodes[1].Size)
	assert.Equal(t, valueobjects.EntityID(3), sub.Nodes[2].ID)
	assert.Equal(t, 2, sub.Nodes[2].Size)

	require.Len(t, sub.Edges, 2)
	assert.Equal(t, Edge{Source: 1, Target: 2, Label: "Works For", Confidence: 0.9, Direction: DirectionOutgoing}, sub.Edges[0])
	assert.Equal(t, Edge{Source: 3, Target: 1, Label: "Located In", Confidence: 0.9, Direction: DirectionIncoming}, sub.Edges[1])
}

func TestEgoSubgraph_CenterAlwaysSizeThree(t *testing.T) {
	center := entity(5, "Y2K", valueobjects.EntityTypeTime)

	sub, err := EgoSubgraph(center, nil, nil, nil)
	require.NoError(t, err)

	require.Len(t, sub.Nodes, 1)
	assert.Equal(t, 3, sub.Nodes[0].Size)
	assert.True(t, sub.Nodes[0].Center)
	assert.Empty(t, sub.Edges)
	assert.NotNil(t, sub.Edges)
}

func TestEgoSubgraph_BidirectionalNeighborDeduplicated(t *testing.T) {
	a := entity(1, "A", valueobjects.EntityTypePerson)
	b := entity(2, "B", valueobjects.EntityTypePerson)

	outgoing := []*entities.Relationship{relationship(10, 1, 2, valueobjects.RelationshipRelatedTo)}
	incoming := []*entities.Relationship{relationship(11, 2, 1, valueobjects.RelationshipRelatedTo)}

	sub, err := EgoSubgraph(a, outgoing, incoming, neighborsOf(b))
	require.NoError(t, err)

	require.Len(t, sub.Nodes, 2)
	assert.Equal(t, valueobjects.EntityID(2), sub.Nodes[1].ID)
	assert.Equal(t, NeighborNodeSize, sub.Nodes[1].Size)

	require.Len(t, sub.Edges, 2)
	assert.Equal(t, DirectionOutgoing, sub.Edges[0].Direction)
	assert.Equal(t, DirectionIncoming, sub.Edges[1].Direction)
}

func TestEgoSubgraph_DuplicateNeighborKeepsFirstPosition(t *testing.T) {
	a := entity(1, "A", valueobjects.EntityTypePerson)
	b := entity(2, "B", valueobjects.EntityTypeEvent)
	c := entity(3, "C", valueobjects.EntityTypeEvent)

	outgoing := []*entities.Relationship{
		relationship(10, 1, 2, valueobjects.RelationshipParticipatedIn),
		relationship(11, 1, 3, valueobjects.RelationshipParticipatedIn),
		relationship(12, 1, 2, valueobjects.RelationshipFounded),
	}
	incoming := []*entities.Relationship{relationship(13, 2, 1, valueobjects.RelationshipRelatedTo)}

	sub, err := EgoSubgraph(a, outgoing, incoming, neighborsOf(b, c))
	require.NoError(t, err)

	ids := make([]valueobjects.EntityID, 0, len(sub.Nodes))
	for _, n := range sub.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []valueobjects.EntityID{1, 2, 3}, ids)
	assert.Len(t, sub.Edges, 4)
}

func TestEgoSubgraph_SelfLoopKeepsCenter(t *testing.T) {
	a := entity(1, "A", valueobjects.EntityTypeOrganization)
	loop := relationship(10, 1, 1, valueobjects.RelationshipPartOf)

	sub, err := EgoSubgraph(a, []*entities.Relationship{loop}, []*entities.Relationship{loop}, nil)
	require.NoError(t, err)

	require.Len(t, sub.Nodes, 1)
	assert.True(t, sub.Nodes[0].Center)
	assert.Equal(t, CenterNodeSize, sub.Nodes[0].Size)
	assert.Len(t, sub.Edges, 2)
}

func TestEgoSubgraph_MissingNeighborFails(t *testing.T) {
	a := entity(1, "A", valueobjects.EntityTypePerson)
	outgoing := []*entities.Relationship{relationship(10, 1, 2, valueobjects.RelationshipWorksFor)}

	sub, err := EgoSubgraph(a, outgoing, nil, nil)

	assert.Nil(t, sub)
	assert.True(t, pkgerrors.IsIntegrity(err))
}

func TestEgoSubgraph_EveryEdgeEndpointIsANode(t *testing.T) {
	a := entity(1, "A", valueobjects.EntityTypePerson)
	others := []*entities.Entity{
		entity(2, "B", valueobjects.EntityTypeOrganization),
		entity(3, "C", valueobjects.EntityTypeLocation),
		entity(4, "D", valueobjects.EntityTypeEvent),
	}
	outgoing := []*entities.Relationship{
		relationship(10, 1, 2, valueobjects.RelationshipWorksFor),
		relationship(11, 1, 4, valueobjects.RelationshipParticipatedIn),
	}
	incoming := []*entities.Relationship{
		relationship(12, 3, 1, valueobjects.RelationshipLocatedIn),
		relationship(13, 2, 1, valueobjects.RelationshipFounded),
	}

	sub, err := EgoSubgraph(a, outgoing, incoming, neighborsOf(others...))
	require.NoError(t, err)

	assert.Len(t, sub.Nodes, 1+len(NeighborIDs(a.ID(), outgoing, incoming)))
	assert.Len(t, sub.Edges, len(outgoing)+len(incoming))

	present := make(map[valueobjects.EntityID]bool)
	for _, n := range sub.Nodes {
		present[n.ID] = true
	}
	for _, e := range sub.Edges {
		assert.True(t, present[e.Source], "source %d", e.Source)
		assert.True(t, present[e.Target], "target %d", e.Target)
	}
}

func TestNeighborIDs(t *testing.T) {
	outgoing := []*entities.Relationship{
		relationship(10, 1, 2, valueobjects.RelationshipRelatedTo),
		relationship(11, 1, 1, valueobjects.RelationshipRelatedTo),
		relationship(12, 1, 3, valueobjects.RelationshipRelatedTo),
	}
	incoming := []*entities.Relationship{
		relationship(13, 3, 1, valueobjects.RelationshipRelatedTo),
		relationship(14, 4, 1, valueobjects.RelationshipRelatedTo),
	}

	assert.Equal(t, []valueobjects.EntityID{2, 3, 4}, NeighborIDs(1, outgoing, incoming))
	assert.Empty(t, NeighborIDs(1, nil, nil))
}

func TestSubgraph_JSONShape(t *testing.T) {
	a := entity(1, "A", valueobjects.EntityTypePerson)
	b := entity(2, "B", valueobjects.EntityTypeOrganization)

	sub, err := EgoSubgraph(a, []*entities.Relationship{relationship(10, 1, 2, valueobjects.RelationshipWorksFor)}, nil, neighborsOf(b))
	require.NoError(t, err)

	raw, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"center_entity": {"id": 1, "name": "A", "type": "person"},
		"nodes": [
			{"id": 1, "label": "A", "type": "person", "description": "A description", "size": 3, "center": true},
			{"id": 2, "label": "B", "type": "organization", "description": "B description", "size": 2}
		],
		"edges": [
			{"source": 1, "target": 2, "label": "Works For", "description": "", "confidence": 0.9, "direction": "outgoing"}
		]
	}`, string(raw))
}
