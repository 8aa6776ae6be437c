package commands

import (
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// CreateRelationshipCommand connects two existing entities
type CreateRelationshipCommand struct {
	SourceEntityID   int64    `json:"source_entity_id" validate:"required,gt=0"`
	TargetEntityID   int64    `json:"target_entity_id" validate:"required,gt=0"`
	RelationshipType string   `json:"relationship_type" validate:"required,relationship_type"`
	Description      string   `json:"description" validate:"max=10000"`
	Confidence       *float64 `json:"confidence" validate:"omitempty,gte=0,lte=1"`
}

// Validate validates the command
func (c CreateRelationshipCommand) Validate() error {
	if c.SourceEntityID <= 0 || c.TargetEntityID <= 0 {
		return pkgerrors.NewValidationError("source_entity_id and target_entity_id are required")
	}
	return validateRelationshipType(c.RelationshipType)
}

// UpdateRelationshipCommand replaces every mutable field of a relationship.
// An omitted confidence resets it to the default.
type UpdateRelationshipCommand struct {
	RelationshipID   valueobjects.RelationshipID `json:"-"`
	SourceEntityID   int64                       `json:"source_entity_id" validate:"required,gt=0"`
	TargetEntityID   int64                       `json:"target_entity_id" validate:"required,gt=0"`
	RelationshipType string                      `json:"relationship_type" validate:"required,relationship_type"`
	Description      string                      `json:"description" validate:"max=10000"`
	Confidence       *float64                    `json:"confidence" validate:"omitempty,gte=0,lte=1"`
}

// Validate validates the command
func (c UpdateRelationshipCommand) Validate() error {
	if c.RelationshipID.IsZero() {
		return pkgerrors.NewValidationError("relationship ID is required")
	}
	return CreateRelationshipCommand{
		SourceEntityID:   c.SourceEntityID,
		TargetEntityID:   c.TargetEntityID,
		RelationshipType: c.RelationshipType,
	}.Validate()
}

// PatchRelationshipCommand changes only the fields that are present
type PatchRelationshipCommand struct {
	RelationshipID   valueobjects.RelationshipID `json:"-"`
	SourceEntityID   *int64                      `json:"source_entity_id" validate:"omitempty,gt=0"`
	TargetEntityID   *int64                      `json:"target_entity_id" validate:"omitempty,gt=0"`
	RelationshipType *string                     `json:"relationship_type" validate:"omitempty,relationship_type"`
	Description      *string                     `json:"description" validate:"omitempty,max=10000"`
	Confidence       *float64                    `json:"confidence" validate:"omitempty,gte=0,lte=1"`
}

// Validate validates the command
func (c PatchRelationshipCommand) Validate() error {
	if c.RelationshipID.IsZero() {
		return pkgerrors.NewValidationError("relationship ID is required")
	}
	if (c.SourceEntityID != nil && *c.SourceEntityID <= 0) || (c.TargetEntityID != nil && *c.TargetEntityID <= 0) {
		return pkgerrors.NewValidationError("source_entity_id and target_entity_id must be positive")
	}
	if c.RelationshipType != nil {
		return validateRelationshipType(*c.RelationshipType)
	}
	return nil
}

func validateRelationshipType(s string) error {
	if _, err := valueobjects.ParseRelationshipType(s); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// DeleteRelationshipCommand removes a relationship
type DeleteRelationshipCommand struct {
	RelationshipID valueobjects.RelationshipID
}

// Validate validates the command
func (c DeleteRelationshipCommand) Validate() error {
	if c.RelationshipID.IsZero() {
		return pkgerrors.NewValidationError("relationship ID is required")
	}
	return nil
}
