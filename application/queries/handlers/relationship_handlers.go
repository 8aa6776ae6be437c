package handlers

import (
	"context"

	"kgraph/application/ports"
	"kgraph/application/queries"
	pkgerrors "kgraph/pkg/errors"
)

// RelationshipQueryHandler serves relationship lookups and listings
type RelationshipQueryHandler struct {
	relationshipRepo ports.RelationshipRepository
}

// NewRelationshipQueryHandler creates a new relationship query handler
func NewRelationshipQueryHandler(relationshipRepo ports.RelationshipRepository) *RelationshipQueryHandler {
	return &RelationshipQueryHandler{relationshipRepo: relationshipRepo}
}

// GetRelationship returns a single relationship
func (h *RelationshipQueryHandler) GetRelationship(ctx context.Context, query queries.GetRelationshipQuery) (*queries.RelationshipView, error) {
	r, err := h.relationshipRepo.GetByID(ctx, query.RelationshipID)
	if err != nil {
		return nil, err
	}
	view := queries.NewRelationshipView(r)
	return &view, nil
}

// ListRelationships returns the relationships matching every set filter
func (h *RelationshipQueryHandler) ListRelationships(ctx context.Context, query queries.ListRelationshipsQuery) ([]queries.RelationshipView, error) {
	rels, err := h.relationshipRepo.List(ctx, ports.RelationshipFilter{
		Type:     query.Type,
		SourceID: query.SourceID,
		TargetID: query.TargetID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list relationships")
	}
	return queries.NewRelationshipViews(rels), nil
}
