package events

import (
	"time"

	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"

	"github.com/google/uuid"
)

// SourceBackend identifies this service as the producer of events
const SourceBackend = "kgraph.backend"

// Event type names
const (
	TypeEntityCreated       = "entity.created"
	TypeEntityUpdated       = "entity.updated"
	TypeEntityDeleted       = "entity.deleted"
	TypeRelationshipCreated = "relationship.created"
	TypeRelationshipUpdated = "relationship.updated"
	TypeRelationshipDeleted = "relationship.deleted"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

func newBase(aggregateID, eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     1,
	}
}

// Entity Events

// EntityChanged is raised when an entity is created or updated
type EntityChanged struct {
	BaseEvent
	EntityID   valueobjects.EntityID `json:"entity_id"`
	Name       string                `json:"name"`
	EntityType string                `json:"entity_type"`
}

// NewEntityCreated creates an entity.created event
func NewEntityCreated(e *entities.Entity, timestamp time.Time) EntityChanged {
	return newEntityChanged(e, TypeEntityCreated, timestamp)
}

// NewEntityUpdated creates an entity.updated event
func NewEntityUpdated(e *entities.Entity, timestamp time.Time) EntityChanged {
	return newEntityChanged(e, TypeEntityUpdated, timestamp)
}

func newEntityChanged(e *entities.Entity, eventType string, timestamp time.Time) EntityChanged {
	return EntityChanged{
		BaseEvent:  newBase("entity:"+e.ID().String(), eventType, timestamp),
		EntityID:   e.ID(),
		Name:       e.Name(),
		EntityType: e.Type().String(),
	}
}

// EntityDeleted is raised when an entity and its relationships are removed
type EntityDeleted struct {
	BaseEvent
	EntityID valueobjects.EntityID `json:"entity_id"`
}

// NewEntityDeleted creates an entity.deleted event
func NewEntityDeleted(id valueobjects.EntityID, timestamp time.Time) EntityDeleted {
	return EntityDeleted{
		BaseEvent: newBase("entity:"+id.String(), TypeEntityDeleted, timestamp),
		EntityID:  id,
	}
}

// Relationship Events

// RelationshipChanged is raised when a relationship is created or updated
type RelationshipChanged struct {
	BaseEvent
	RelationshipID   valueobjects.RelationshipID `json:"relationship_id"`
	SourceEntityID   valueobjects.EntityID       `json:"source_entity_id"`
	TargetEntityID   valueobjects.EntityID       `json:"target_entity_id"`
	RelationshipType string                      `json:"relationship_type"`
	Confidence       float64                     `json:"confidence"`
}

// NewRelationshipCreated creates a relationship.created event
func NewRelationshipCreated(r *entities.Relationship, timestamp time.Time) RelationshipChanged {
	return newRelationshipChanged(r, TypeRelationshipCreated, timestamp)
}

// NewRelationshipUpdated creates a relationship.updated event
func NewRelationshipUpdated(r *entities.Relationship, timestamp time.Time) RelationshipChanged {
	return newRelationshipChanged(r, TypeRelationshipUpdated, timestamp)
}

func newRelationshipChanged(r *entities.Relationship, eventType string, timestamp time.Time) RelationshipChanged {
	return RelationshipChanged{
		BaseEvent:        newBase("relationship:"+r.ID().String(), eventType, timestamp),
		RelationshipID:   r.ID(),
		SourceEntityID:   r.SourceID(),
		TargetEntityID:   r.TargetID(),
		RelationshipType: r.Type().String(),
		Confidence:       r.Confidence(),
	}
}

// RelationshipDeleted is raised when a relationship is removed
type RelationshipDeleted struct {
	BaseEvent
	RelationshipID valueobjects.RelationshipID `json:"relationship_id"`
}

// NewRelationshipDeleted creates a relationship.deleted event
func NewRelationshipDeleted(id valueobjects.RelationshipID, timestamp time.Time) RelationshipDeleted {
	return RelationshipDeleted{
		BaseEvent:      newBase("relationship:"+id.String(), TypeRelationshipDeleted, timestamp),
		RelationshipID: id,
	}
}
