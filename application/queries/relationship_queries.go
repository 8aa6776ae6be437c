package queries

import (
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// GetRelationshipQuery represents a query to get a single relationship
type GetRelationshipQuery struct {
	RelationshipID valueobjects.RelationshipID
}

// Validate validates the query
func (q GetRelationshipQuery) Validate() error {
	if q.RelationshipID.IsZero() {
		return pkgerrors.NewValidationError("relationship ID is required")
	}
	return nil
}

// ListRelationshipsQuery lists relationships. Every set field narrows the result.
type ListRelationshipsQuery struct {
	Type     valueobjects.RelationshipType
	SourceID *valueobjects.EntityID
	TargetID *valueobjects.EntityID
}

// Validate validates the query
func (q ListRelationshipsQuery) Validate() error { return nil }
