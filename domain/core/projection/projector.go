package projection

import (
	"fmt"

	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// FullGraph projects every entity to a node and every relationship to an
// edge, preserving input order. A relationship pointing at an entity that is
// not in the input fails the whole projection.
func FullGraph(ents []*entities.Entity, rels []*entities.Relationship) (*Graph, error) {
	graph := &Graph{
		Nodes: make([]Node, 0, len(ents)),
		Edges: make([]Edge, 0, len(rels)),
	}

	known := make(map[valueobjects.EntityID]struct{}, len(ents))
	for _, e := range ents {
		known[e.ID()] = struct{}{}
		graph.Nodes = append(graph.Nodes, nodeFor(e, SizeFor(e.Type())))
	}

	for _, r := range rels {
		for _, endpoint := range []valueobjects.EntityID{r.SourceID(), r.TargetID()} {
			if _, ok := known[endpoint]; !ok {
				return nil, missingEntity(r, endpoint)
			}
		}
		graph.Edges = append(graph.Edges, edgeFor(r, r.SourceID(), r.TargetID(), ""))
	}

	return graph, nil
}

// EgoSubgraph projects the center entity and its direct neighbors.
//
// outgoing must hold the relationships whose source is the center, incoming
// those whose target is the center. neighbors resolves every entity on the
// far side of those relationships. Outgoing relationships are applied before
// incoming ones; a neighbor seen more than once keeps its first position and
// the last written value. The center node is never replaced.
func EgoSubgraph(
	center *entities.Entity,
	outgoing, incoming []*entities.Relationship,
	neighbors map[valueobjects.EntityID]*entities.Entity,
) (*Subgraph, error) {
	nodes := newNodeSet(1 + len(outgoing) + len(incoming))

	centerNode := nodeFor(center, CenterNodeSize)
	centerNode.Center = true
	nodes.put(centerNode)

	edges := make([]Edge, 0, len(outgoing)+len(incoming))

	addNeighbor := func(r *entities.Relationship, id valueobjects.EntityID) error {
		if id == center.ID() {
			return nil
		}
		neighbor, ok := neighbors[id]
		if !ok || neighbor == nil {
			return missingEntity(r, id)
		}
		nodes.put(nodeFor(neighbor, NeighborNodeSize))
		return nil
	}

	for _, r := range outgoing {
		if err := addNeighbor(r, r.TargetID()); err != nil {
			return nil, err
		}
		edges = append(edges, edgeFor(r, center.ID(), r.TargetID(), DirectionOutgoing))
	}

	for _, r := range incoming {
		if err := addNeighbor(r, r.SourceID()); err != nil {
			return nil, err
		}
		edges = append(edges, edgeFor(r, r.SourceID(), center.ID(), DirectionIncoming))
	}

	return &Subgraph{
		CenterEntity: CenterEntity{
			ID:   center.ID(),
			Name: center.Name(),
			Type: center.Type().String(),
		},
		Nodes: nodes.list(),
		Edges: edges,
	}, nil
}

// NeighborIDs returns the distinct far-side entity IDs of the center's
// relationships, in first-seen order, excluding the center itself
func NeighborIDs(center valueobjects.EntityID, outgoing, incoming []*entities.Relationship) []valueobjects.EntityID {
	seen := make(map[valueobjects.EntityID]struct{}, len(outgoing)+len(incoming))
	ids := make([]valueobjects.EntityID, 0, len(outgoing)+len(incoming))

	add := func(id valueobjects.EntityID) {
		if id == center {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, r := range outgoing {
		add(r.TargetID())
	}
	for _, r := range incoming {
		add(r.SourceID())
	}
	return ids
}

func missingEntity(r *entities.Relationship, id valueobjects.EntityID) error {
	return pkgerrors.NewIntegrityError(
		fmt.Sprintf("relationship %s references missing entity %s", r.ID(), id),
	).WithDetails(map[string]interface{}{
		"relationship_id": r.ID().Int64(),
		"entity_id":       id.Int64(),
	})
}

// nodeSet is an insertion-ordered mapping keyed by entity ID
type nodeSet struct {
	order []valueobjects.EntityID
	byID  map[valueobjects.EntityID]Node
}

func newNodeSet(capacity int) *nodeSet {
	return &nodeSet{
		order: make([]valueobjects.EntityID, 0, capacity),
		byID:  make(map[valueobjects.EntityID]Node, capacity),
	}
}

func (s *nodeSet) put(n Node) {
	if _, ok := s.byID[n.ID]; !ok {
		s.order = append(s.order, n.ID)
	}
	s.byID[n.ID] = n
}

func (s *nodeSet) list() []Node {
	out := make([]Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}
