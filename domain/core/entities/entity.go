package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	"kgraph/domain/config"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// Entity is a named real-world object or concept stored as a graph node candidate
type Entity struct {
	id          valueobjects.EntityID
	name        string
	entityType  valueobjects.EntityType
	description string
	createdAt   time.Time
}

// NewEntity creates a new, not yet persisted entity with business rule validation
func NewEntity(name string, entityType valueobjects.EntityType, description string, cfg *config.DomainConfig) (*Entity, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	e := &Entity{createdAt: time.Now().UTC()}
	if err := e.apply(name, entityType, description, cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// ReconstructEntity rebuilds an entity from repository data. No validation is
// applied so that rows written by older versions still load.
func ReconstructEntity(
	id valueobjects.EntityID,
	name string,
	entityType valueobjects.EntityType,
	description string,
	createdAt time.Time,
) *Entity {
	return &Entity{
		id:          id,
		name:        name,
		entityType:  entityType,
		description: description,
		createdAt:   createdAt,
	}
}

// Update replaces the mutable fields of the entity
func (e *Entity) Update(name string, entityType valueobjects.EntityType, description string, cfg *config.DomainConfig) error {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return e.apply(name, entityType, description, cfg)
}

func (e *Entity) apply(name string, entityType valueobjects.EntityType, description string, cfg *config.DomainConfig) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgerrors.NewValidationError("entity name cannot be empty")
	}
	if utf8.RuneCountInString(name) > cfg.MaxNameLength {
		return pkgerrors.NewValidationError("entity name is too long")
	}
	if !entityType.IsKnown() {
		return pkgerrors.NewValidationError("unknown entity type: " + string(entityType))
	}
	if utf8.RuneCountInString(description) > cfg.MaxDescriptionLength {
		return pkgerrors.NewValidationError("entity description is too long")
	}

	e.name = name
	e.entityType = entityType
	e.description = description
	return nil
}

// AssignID records the identifier chosen by the store on insert
func (e *Entity) AssignID(id valueobjects.EntityID) { e.id = id }

// ID returns the entity ID
func (e *Entity) ID() valueobjects.EntityID { return e.id }

// Name returns the display name
func (e *Entity) Name() string { return e.name }

// Type returns the entity type
func (e *Entity) Type() valueobjects.EntityType { return e.entityType }

// Description returns the optional description
func (e *Entity) Description() string { return e.description }

// CreatedAt returns the creation timestamp
func (e *Entity) CreatedAt() time.Time { return e.createdAt }
