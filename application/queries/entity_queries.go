package queries

import (
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// GetEntityQuery represents a query to get a single entity
type GetEntityQuery struct {
	EntityID valueobjects.EntityID
}

// Validate validates the query
func (q GetEntityQuery) Validate() error {
	if q.EntityID.IsZero() {
		return pkgerrors.NewValidationError("entity ID is required")
	}
	return nil
}

// ListEntitiesQuery lists entities, optionally restricted to one type
type ListEntitiesQuery struct {
	Type valueobjects.EntityType
}

// Validate validates the query
func (q ListEntitiesQuery) Validate() error { return nil }

// SearchEntitiesQuery finds entities whose name contains Query,
// case-insensitively, newest first
type SearchEntitiesQuery struct {
	Query    string
	Type     valueobjects.EntityType
	Page     int
	PageSize int
}

// Validate validates the query
func (q SearchEntitiesQuery) Validate() error {
	if q.Page < 1 {
		return pkgerrors.NewValidationError("page must be positive")
	}
	if q.PageSize < 1 {
		return pkgerrors.NewValidationError("page_size must be positive")
	}
	return nil
}
