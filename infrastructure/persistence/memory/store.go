// Package memory provides in-process repositories with the same ordering
// and cascade semantics as the postgres store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kgraph/application/ports"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

type entityRow struct {
	name        string
	entityType  valueobjects.EntityType
	description string
	createdAt   time.Time
}

type relationshipRow struct {
	sourceID     valueobjects.EntityID
	targetID     valueobjects.EntityID
	relationType valueobjects.RelationshipType
	description  string
	confidence   float64
	createdAt    time.Time
}

// Store holds entities and relationships behind one lock so that cascade
// deletes are atomic
type Store struct {
	mu            sync.RWMutex
	entities      map[valueobjects.EntityID]entityRow
	relationships map[valueobjects.RelationshipID]relationshipRow
	nextEntity    valueobjects.EntityID
	nextRel       valueobjects.RelationshipID
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		entities:      make(map[valueobjects.EntityID]entityRow),
		relationships: make(map[valueobjects.RelationshipID]relationshipRow),
	}
}

// Entities returns the entity repository view of the store
func (s *Store) Entities() *EntityRepository { return &EntityRepository{store: s} }

// Relationships returns the relationship repository view of the store
func (s *Store) Relationships() *RelationshipRepository { return &RelationshipRepository{store: s} }

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// InsertRelationshipUnchecked stores a relationship without verifying its
// endpoints. It exists to reproduce rows left behind by a store without
// foreign keys.
func (s *Store) InsertRelationshipUnchecked(rel *entities.Relationship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertRelationship(rel)
}

func (s *Store) insertRelationship(rel *entities.Relationship) {
	s.nextRel++
	rel.AssignID(s.nextRel)
	s.relationships[s.nextRel] = relationshipRow{
		sourceID:     rel.SourceID(),
		targetID:     rel.TargetID(),
		relationType: rel.Type(),
		description:  rel.Description(),
		confidence:   rel.Confidence(),
		createdAt:    rel.CreatedAt(),
	}
}

func (r entityRow) toEntity(id valueobjects.EntityID) *entities.Entity {
	return entities.ReconstructEntity(id, r.name, r.entityType, r.description, r.createdAt)
}

func (r relationshipRow) toRelationship(id valueobjects.RelationshipID) *entities.Relationship {
	return entities.ReconstructRelationship(id, r.sourceID, r.targetID, r.relationType, r.description, r.confidence, r.createdAt)
}

// EntityRepository implements ports.EntityRepository over a Store
type EntityRepository struct {
	store *Store
}

// Save inserts or updates an entity
func (r *EntityRepository) Save(ctx context.Context, e *entities.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row := entityRow{
		name:        e.Name(),
		entityType:  e.Type(),
		description: e.Description(),
		createdAt:   e.CreatedAt(),
	}

	if e.ID().IsZero() {
		s.nextEntity++
		e.AssignID(s.nextEntity)
		s.entities[s.nextEntity] = row
		return nil
	}

	existing, ok := s.entities[e.ID()]
	if !ok {
		return pkgerrors.NewNotFoundError("entity")
	}
	row.createdAt = existing.createdAt
	s.entities[e.ID()] = row
	return nil
}

// GetByID retrieves an entity by its ID
func (r *EntityRepository) GetByID(ctx context.Context, id valueobjects.EntityID) (*entities.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.entities[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("entity")
	}
	return row.toEntity(id), nil
}

// GetByIDs retrieves the entities that exist among ids
func (r *EntityRepository) GetByIDs(ctx context.Context, ids []valueobjects.EntityID) (map[valueobjects.EntityID]*entities.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entitiesByID(ids), nil
}

// List returns entities matching the filter
func (r *EntityRepository) List(ctx context.Context, filter ports.EntityFilter) ([]*entities.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches := r.matching(filter)

	if filter.Offset > 0 {
		if filter.Offset >= len(matches) {
			return []*entities.Entity{}, nil
		}
		matches = matches[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matches) {
		matches = matches[:filter.Limit]
	}
	return matches, nil
}

// Count returns the number of entities matching the filter
func (r *EntityRepository) Count(ctx context.Context, filter ports.EntityFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(r.matching(filter)), nil
}

func (r *EntityRepository) matching(filter ports.EntityFilter) []*entities.Entity {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matchingEntities(filter)
}

// matchingEntities must be called with s.mu held
func (s *Store) matchingEntities(filter ports.EntityFilter) []*entities.Entity {
	needle := strings.ToLower(filter.NameContains)
	out := make([]*entities.Entity, 0, len(s.entities))
	for id, row := range s.entities {
		if filter.Type != "" && row.entityType != filter.Type {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(row.name), needle) {
			continue
		}
		out = append(out, row.toEntity(id))
	}

	if filter.NewestFirst {
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
				return out[i].CreatedAt().After(out[j].CreatedAt())
			}
			return out[i].ID() > out[j].ID()
		})
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	}
	return out
}

// entitiesByID must be called with s.mu held
func (s *Store) entitiesByID(ids []valueobjects.EntityID) map[valueobjects.EntityID]*entities.Entity {
	found := make(map[valueobjects.EntityID]*entities.Entity, len(ids))
	for _, id := range ids {
		if row, ok := s.entities[id]; ok {
			found[id] = row.toEntity(id)
		}
	}
	return found
}

// matchingRelationships must be called with s.mu held
func (s *Store) matchingRelationships(filter ports.RelationshipFilter) []*entities.Relationship {
	out := make([]*entities.Relationship, 0, len(s.relationships))
	for id, row := range s.relationships {
		rel := row.toRelationship(id)
		if filter.Matches(rel) {
			out = append(out, rel)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Delete removes an entity and every relationship touching it
func (r *EntityRepository) Delete(ctx context.Context, id valueobjects.EntityID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return pkgerrors.NewNotFoundError("entity")
	}
	delete(s.entities, id)

	for relID, row := range s.relationships {
		if row.toRelationship(relID).Touches(id) {
			delete(s.relationships, relID)
		}
	}
	return nil
}

// RelationshipRepository implements ports.RelationshipRepository over a Store
type RelationshipRepository struct {
	store *Store
}

// Save inserts or replaces a relationship after checking that both endpoints exist
func (r *RelationshipRepository) Save(ctx context.Context, rel *entities.Relationship) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing relationshipRow
	if !rel.ID().IsZero() {
		row, ok := s.relationships[rel.ID()]
		if !ok {
			return pkgerrors.NewNotFoundError("relationship")
		}
		existing = row
	}
	if _, ok := s.entities[rel.SourceID()]; !ok {
		return pkgerrors.NewNotFoundError("source entity")
	}
	if _, ok := s.entities[rel.TargetID()]; !ok {
		return pkgerrors.NewNotFoundError("target entity")
	}

	if rel.ID().IsZero() {
		s.insertRelationship(rel)
		return nil
	}

	s.relationships[rel.ID()] = relationshipRow{
		sourceID:     rel.SourceID(),
		targetID:     rel.TargetID(),
		relationType: rel.Type(),
		description:  rel.Description(),
		confidence:   rel.Confidence(),
		createdAt:    existing.createdAt,
	}
	return nil
}

// GetByID retrieves a relationship by its ID
func (r *RelationshipRepository) GetByID(ctx context.Context, id valueobjects.RelationshipID) (*entities.Relationship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.relationships[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("relationship")
	}
	return row.toRelationship(id), nil
}

// List returns relationships matching the filter in ascending ID order
func (r *RelationshipRepository) List(ctx context.Context, filter ports.RelationshipFilter) ([]*entities.Relationship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.matchingRelationships(filter), nil
}

// Delete removes a relationship
func (r *RelationshipRepository) Delete(ctx context.Context, id valueobjects.RelationshipID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.relationships[id]; !ok {
		return pkgerrors.NewNotFoundError("relationship")
	}
	delete(s.relationships, id)
	return nil
}

var (
	_ ports.EntityRepository       = (*EntityRepository)(nil)
	_ ports.RelationshipRepository = (*RelationshipRepository)(nil)
	_ ports.HealthChecker          = (*Store)(nil)
)
