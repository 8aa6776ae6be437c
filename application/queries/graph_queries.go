package queries

import (
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// GetKnowledgeGraphQuery asks for every entity and relationship as a node/edge view
type GetKnowledgeGraphQuery struct{}

// Validate validates the query
func (q GetKnowledgeGraphQuery) Validate() error { return nil }

// GetEntitySubgraphQuery asks for the one-hop neighborhood of an entity
type GetEntitySubgraphQuery struct {
	EntityID valueobjects.EntityID
}

// Validate validates the query
func (q GetEntitySubgraphQuery) Validate() error {
	if q.EntityID.IsZero() {
		return pkgerrors.NewValidationError("entity ID is required")
	}
	return nil
}
