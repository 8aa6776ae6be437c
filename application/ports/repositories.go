package ports

import (
	"context"

	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	"kgraph/domain/events"
)

// EntityRepository defines the interface for entity persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type EntityRepository interface {
	// Save persists an entity. A zero ID inserts and assigns the new ID on the entity.
	Save(ctx context.Context, entity *entities.Entity) error

	// GetByID retrieves an entity by its ID, returning a NOT_FOUND error if absent
	GetByID(ctx context.Context, id valueobjects.EntityID) (*entities.Entity, error)

	// GetByIDs retrieves the entities that exist among ids, keyed by ID
	GetByIDs(ctx context.Context, ids []valueobjects.EntityID) (map[valueobjects.EntityID]*entities.Entity, error)

	// List returns entities matching the filter in ascending ID order
	// (or newest first when requested)
	List(ctx context.Context, filter EntityFilter) ([]*entities.Entity, error)

	// Count returns the number of entities matching the filter, ignoring Limit and Offset
	Count(ctx context.Context, filter EntityFilter) (int, error)

	// Delete removes an entity and every relationship that touches it
	Delete(ctx context.Context, id valueobjects.EntityID) error
}

// RelationshipRepository defines the interface for relationship persistence
type RelationshipRepository interface {
	// Save persists a relationship. A zero ID inserts and assigns the new ID;
	// otherwise the stored row is replaced. Both endpoints must exist.
	Save(ctx context.Context, rel *entities.Relationship) error

	// GetByID retrieves a relationship by its ID, returning a NOT_FOUND error if absent
	GetByID(ctx context.Context, id valueobjects.RelationshipID) (*entities.Relationship, error)

	// List returns relationships matching the filter in ascending ID order
	List(ctx context.Context, filter RelationshipFilter) ([]*entities.Relationship, error)

	// Delete removes a relationship
	Delete(ctx context.Context, id valueobjects.RelationshipID) error
}

// GraphSnapshot is every entity and relationship as of a single point in time
type GraphSnapshot struct {
	Entities      []*entities.Entity
	Relationships []*entities.Relationship
}

// Neighborhood is an entity with its incident relationships and the entities
// at their far ends, all read as of a single point in time
type Neighborhood struct {
	Center    *entities.Entity
	Outgoing  []*entities.Relationship
	Incoming  []*entities.Relationship
	Neighbors map[valueobjects.EntityID]*entities.Entity
}

// GraphReader reads consistent views of the whole graph. Writes committed
// while a read is in progress are either fully visible or not at all.
type GraphReader interface {
	// ReadGraph returns all entities and relationships in ascending ID order
	ReadGraph(ctx context.Context) (*GraphSnapshot, error)

	// ReadNeighborhood returns the one-hop view around id, or a NOT_FOUND
	// error if the entity does not exist
	ReadNeighborhood(ctx context.Context, id valueobjects.EntityID) (*Neighborhood, error)
}

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// EntityFilter defines entity list and search parameters
type EntityFilter struct {
	Type         valueobjects.EntityType
	NameContains string
	Limit        int
	Offset       int
	NewestFirst  bool
}

// RelationshipFilter defines relationship list parameters. Nil IDs and an
// empty type match everything.
type RelationshipFilter struct {
	SourceID *valueobjects.EntityID
	TargetID *valueobjects.EntityID
	Type     valueobjects.RelationshipType
}

// BySource selects the relationships leaving id
func BySource(id valueobjects.EntityID) RelationshipFilter {
	return RelationshipFilter{SourceID: &id}
}

// ByTarget selects the relationships arriving at id
func ByTarget(id valueobjects.EntityID) RelationshipFilter {
	return RelationshipFilter{TargetID: &id}
}

// Matches reports whether rel satisfies the filter
func (f RelationshipFilter) Matches(rel *entities.Relationship) bool {
	if f.SourceID != nil && rel.SourceID() != *f.SourceID {
		return false
	}
	if f.TargetID != nil && rel.TargetID() != *f.TargetID {
		return false
	}
	if f.Type != "" && rel.Type() != f.Type {
		return false
	}
	return true
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
