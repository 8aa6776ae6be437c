package handlers

import (
	"context"

	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/application/queries"
	"kgraph/domain/core/projection"
	pkgerrors "kgraph/pkg/errors"
)

// GetKnowledgeGraphHandler builds the full graph view
type GetKnowledgeGraphHandler struct {
	graph  ports.GraphReader
	logger *zap.Logger
}

// NewGetKnowledgeGraphHandler creates a new full graph handler
func NewGetKnowledgeGraphHandler(graph ports.GraphReader, logger *zap.Logger) *GetKnowledgeGraphHandler {
	return &GetKnowledgeGraphHandler{
		graph:  graph,
		logger: logger,
	}
}

// Handle executes the full graph query
func (h *GetKnowledgeGraphHandler) Handle(ctx context.Context, query queries.GetKnowledgeGraphQuery) (*projection.Graph, error) {
	snap, err := h.graph.ReadGraph(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read graph")
	}

	graph, err := projection.FullGraph(snap.Entities, snap.Relationships)
	if err != nil {
		h.logger.Error("Knowledge graph projection failed",
			zap.Int("entities", len(snap.Entities)),
			zap.Int("relationships", len(snap.Relationships)),
			zap.Error(err),
		)
		return nil, err
	}

	return graph, nil
}

// GetEntitySubgraphHandler builds the one-hop ego view around an entity
type GetEntitySubgraphHandler struct {
	graph  ports.GraphReader
	logger *zap.Logger
}

// NewGetEntitySubgraphHandler creates a new ego subgraph handler
func NewGetEntitySubgraphHandler(graph ports.GraphReader, logger *zap.Logger) *GetEntitySubgraphHandler {
	return &GetEntitySubgraphHandler{
		graph:  graph,
		logger: logger,
	}
}

// Handle executes the ego subgraph query
func (h *GetEntitySubgraphHandler) Handle(ctx context.Context, query queries.GetEntitySubgraphQuery) (*projection.Subgraph, error) {
	hood, err := h.graph.ReadNeighborhood(ctx, query.EntityID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read entity neighborhood")
	}

	subgraph, err := projection.EgoSubgraph(hood.Center, hood.Outgoing, hood.Incoming, hood.Neighbors)
	if err != nil {
		h.logger.Error("Entity subgraph projection failed",
			zap.String("entityID", query.EntityID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return subgraph, nil
}
