package entities

import (
	"time"
	"unicode/utf8"

	"kgraph/domain/config"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// Relationship is a directed, typed, confidence-scored association between two entities
type Relationship struct {
	id           valueobjects.RelationshipID
	sourceID     valueobjects.EntityID
	targetID     valueobjects.EntityID
	relationType valueobjects.RelationshipType
	description  string
	confidence   float64
	createdAt    time.Time
}

// NewRelationship creates a new, not yet persisted relationship.
// Whether both endpoints exist is checked by the caller against the store.
func NewRelationship(
	sourceID, targetID valueobjects.EntityID,
	relationType valueobjects.RelationshipType,
	description string,
	confidence float64,
	cfg *config.DomainConfig,
) (*Relationship, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	r := &Relationship{createdAt: time.Now().UTC()}
	if err := r.apply(sourceID, targetID, relationType, description, confidence, cfg); err != nil {
		return nil, err
	}
	return r, nil
}

// Update replaces the endpoints, type, description and confidence of the
// relationship under the same rules as NewRelationship
func (r *Relationship) Update(
	sourceID, targetID valueobjects.EntityID,
	relationType valueobjects.RelationshipType,
	description string,
	confidence float64,
	cfg *config.DomainConfig,
) error {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return r.apply(sourceID, targetID, relationType, description, confidence, cfg)
}

func (r *Relationship) apply(
	sourceID, targetID valueobjects.EntityID,
	relationType valueobjects.RelationshipType,
	description string,
	confidence float64,
	cfg *config.DomainConfig,
) error {
	if sourceID.IsZero() || targetID.IsZero() {
		return pkgerrors.NewValidationError("source and target entities are required")
	}
	if sourceID == targetID && !cfg.AllowSelfRelationships {
		return pkgerrors.NewValidationError("an entity cannot be related to itself")
	}
	if !relationType.IsKnown() {
		return pkgerrors.NewValidationError("unknown relationship type: " + string(relationType))
	}
	if confidence < cfg.MinConfidence || confidence > cfg.MaxConfidence {
		return pkgerrors.NewValidationError("confidence is out of range")
	}
	if utf8.RuneCountInString(description) > cfg.MaxDescriptionLength {
		return pkgerrors.NewValidationError("relationship description is too long")
	}

	r.sourceID = sourceID
	r.targetID = targetID
	r.relationType = relationType
	r.description = description
	r.confidence = confidence
	return nil
}

// ReconstructRelationship rebuilds a relationship from repository data
func ReconstructRelationship(
	id valueobjects.RelationshipID,
	sourceID, targetID valueobjects.EntityID,
	relationType valueobjects.RelationshipType,
	description string,
	confidence float64,
	createdAt time.Time,
) *Relationship {
	return &Relationship{
		id:           id,
		sourceID:     sourceID,
		targetID:     targetID,
		relationType: relationType,
		description:  description,
		confidence:   confidence,
		createdAt:    createdAt,
	}
}

// AssignID records the identifier chosen by the store on insert
func (r *Relationship) AssignID(id valueobjects.RelationshipID) { r.id = id }

// ID returns the relationship ID
func (r *Relationship) ID() valueobjects.RelationshipID { return r.id }

// SourceID returns the source entity ID
func (r *Relationship) SourceID() valueobjects.EntityID { return r.sourceID }

// TargetID returns the target entity ID
func (r *Relationship) TargetID() valueobjects.EntityID { return r.targetID }

// Type returns the relationship type code
func (r *Relationship) Type() valueobjects.RelationshipType { return r.relationType }

// Label returns the display label of the relationship type
func (r *Relationship) Label() string { return r.relationType.Label() }

// Description returns the optional description
func (r *Relationship) Description() string { return r.description }

// Confidence returns the confidence score
func (r *Relationship) Confidence() float64 { return r.confidence }

// CreatedAt returns the creation timestamp
func (r *Relationship) CreatedAt() time.Time { return r.createdAt }

// Touches reports whether the entity is either endpoint
func (r *Relationship) Touches(id valueobjects.EntityID) bool {
	return r.sourceID == id || r.targetID == id
}
