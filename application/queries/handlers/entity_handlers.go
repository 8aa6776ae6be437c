package handlers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"kgraph/application/ports"
	"kgraph/application/queries"
	"kgraph/pkg/common"
	pkgerrors "kgraph/pkg/errors"
)

// EntityQueryHandler serves entity lookups, listings and searches
type EntityQueryHandler struct {
	entityRepo ports.EntityRepository
}

// NewEntityQueryHandler creates a new entity query handler
func NewEntityQueryHandler(entityRepo ports.EntityRepository) *EntityQueryHandler {
	return &EntityQueryHandler{entityRepo: entityRepo}
}

// GetEntity returns a single entity
func (h *EntityQueryHandler) GetEntity(ctx context.Context, query queries.GetEntityQuery) (*queries.EntityView, error) {
	e, err := h.entityRepo.GetByID(ctx, query.EntityID)
	if err != nil {
		return nil, err
	}
	view := queries.NewEntityView(e)
	return &view, nil
}

// ListEntities returns every entity, optionally of one type, in ascending ID order
func (h *EntityQueryHandler) ListEntities(ctx context.Context, query queries.ListEntitiesQuery) ([]queries.EntityView, error) {
	ents, err := h.entityRepo.List(ctx, ports.EntityFilter{Type: query.Type})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list entities")
	}
	return queries.NewEntityViews(ents), nil
}

// SearchEntities returns one page of name matches, newest first
func (h *EntityQueryHandler) SearchEntities(ctx context.Context, query queries.SearchEntitiesQuery) (*common.PaginatedResult, error) {
	page := common.PaginationParams{Page: query.Page, PageSize: query.PageSize}
	filter := ports.EntityFilter{
		Type:         query.Type,
		NameContains: query.Query,
		NewestFirst:  true,
		Limit:        page.PageSize,
		Offset:       page.CalculateOffset(),
	}

	var (
		views []queries.EntityView
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ents, err := h.entityRepo.List(gctx, filter)
		if err != nil {
			return pkgerrors.Wrap(err, "failed to search entities")
		}
		views = queries.NewEntityViews(ents)
		return nil
	})
	g.Go(func() error {
		n, err := h.entityRepo.Count(gctx, filter)
		if err != nil {
			return pkgerrors.Wrap(err, "failed to count entities")
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return common.NewPaginatedResult(views, page.Page, page.PageSize, total), nil
}
