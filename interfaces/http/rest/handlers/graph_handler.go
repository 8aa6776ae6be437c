package handlers

import (
	"net/http"

	"kgraph/application/queries"
	querybus "kgraph/application/queries/bus"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GraphHandler serves the graph visualization views
type GraphHandler struct {
	responder
	queryBus *querybus.QueryBus
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(queryBus *querybus.QueryBus, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		responder: responder{errors: errorHandler, logger: logger},
		queryBus:  queryBus,
	}
}

// KnowledgeGraph handles GET /knowledge-graph
func (h *GraphHandler) KnowledgeGraph(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetKnowledgeGraphQuery{})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// EntitySubgraph handles GET /entity-subgraph/{entityID}
func (h *GraphHandler) EntitySubgraph(w http.ResponseWriter, r *http.Request) {
	entityID, err := valueobjects.ParseEntityID(chi.URLParam(r, "entityID"))
	if err != nil {
		h.notFound(w, r, "entity")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetEntitySubgraphQuery{EntityID: entityID})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}
