package memory

import (
	"context"

	"kgraph/application/ports"
	"kgraph/domain/core/projection"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// ReadGraph returns every entity and relationship under a single read lock
func (s *Store) ReadGraph(ctx context.Context) (*ports.GraphSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return &ports.GraphSnapshot{
		Entities:      s.matchingEntities(ports.EntityFilter{}),
		Relationships: s.matchingRelationships(ports.RelationshipFilter{}),
	}, nil
}

// ReadNeighborhood returns the one-hop view around id under a single read lock
func (s *Store) ReadNeighborhood(ctx context.Context, id valueobjects.EntityID) (*ports.Neighborhood, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.entities[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("entity")
	}

	outgoing := s.matchingRelationships(ports.BySource(id))
	incoming := s.matchingRelationships(ports.ByTarget(id))

	return &ports.Neighborhood{
		Center:    row.toEntity(id),
		Outgoing:  outgoing,
		Incoming:  incoming,
		Neighbors: s.entitiesByID(projection.NeighborIDs(id, outgoing, incoming)),
	}, nil
}

var _ ports.GraphReader = (*Store)(nil)
