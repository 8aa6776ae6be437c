package commands

import (
	"strings"

	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// CreateEntityCommand represents the command to create a new entity
type CreateEntityCommand struct {
	Name        string `json:"name" validate:"required,max=255"`
	EntityType  string `json:"entity_type" validate:"required,entity_type"`
	Description string `json:"description" validate:"max=10000"`
}

// Validate validates the command
func (c CreateEntityCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return pkgerrors.NewValidationError("name is required")
	}
	return validateEntityType(c.EntityType)
}

func validateEntityType(s string) error {
	if _, err := valueobjects.ParseEntityType(s); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// UpdateEntityCommand replaces the mutable fields of an entity
type UpdateEntityCommand struct {
	EntityID    valueobjects.EntityID `json:"-"`
	Name        string                `json:"name" validate:"required,max=255"`
	EntityType  string                `json:"entity_type" validate:"required,entity_type"`
	Description string                `json:"description" validate:"max=10000"`
}

// Validate validates the command
func (c UpdateEntityCommand) Validate() error {
	if c.EntityID.IsZero() {
		return pkgerrors.NewValidationError("entity ID is required")
	}
	return CreateEntityCommand{Name: c.Name, EntityType: c.EntityType}.Validate()
}

// PatchEntityCommand changes only the fields that are present
type PatchEntityCommand struct {
	EntityID    valueobjects.EntityID `json:"-"`
	Name        *string               `json:"name" validate:"omitempty,max=255"`
	EntityType  *string               `json:"entity_type" validate:"omitempty,entity_type"`
	Description *string               `json:"description" validate:"omitempty,max=10000"`
}

// Validate validates the command
func (c PatchEntityCommand) Validate() error {
	if c.EntityID.IsZero() {
		return pkgerrors.NewValidationError("entity ID is required")
	}
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return pkgerrors.NewValidationError("name cannot be blank")
	}
	if c.EntityType != nil {
		return validateEntityType(*c.EntityType)
	}
	return nil
}

// DeleteEntityCommand removes an entity together with its relationships
type DeleteEntityCommand struct {
	EntityID valueobjects.EntityID
}

// Validate validates the command
func (c DeleteEntityCommand) Validate() error {
	if c.EntityID.IsZero() {
		return pkgerrors.NewValidationError("entity ID is required")
	}
	return nil
}
