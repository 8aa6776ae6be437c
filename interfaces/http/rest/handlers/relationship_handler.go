package handlers

import (
	"net/http"

	"kgraph/application/commands"
	"kgraph/application/commands/bus"
	"kgraph/application/queries"
	querybus "kgraph/application/queries/bus"
	"kgraph/domain/core/valueobjects"
	"kgraph/pkg/common"
	pkgerrors "kgraph/pkg/errors"
	"kgraph/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RelationshipHandler handles relationship-related HTTP requests
type RelationshipHandler struct {
	responder
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
}

// NewRelationshipHandler creates a new relationship handler
func NewRelationshipHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *RelationshipHandler {
	return &RelationshipHandler{
		responder:  responder{errors: errorHandler, logger: logger},
		commandBus: commandBus,
		queryBus:   queryBus,
	}
}

// ListRelationships handles GET /relationships. type, source_id and
// target_id each narrow the result when present.
func (h *RelationshipHandler) ListRelationships(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := queries.ListRelationshipsQuery{
		Type: valueobjects.RelationshipType(params.Get("type")),
	}

	var err error
	if query.SourceID, err = optionalEntityID(params.Get("source_id")); err != nil {
		h.badRequest(w, r, "invalid source_id")
		return
	}
	if query.TargetID, err = optionalEntityID(params.Get("target_id")); err != nil {
		h.badRequest(w, r, "invalid target_id")
		return
	}

	h.list(w, r, query)
}

// ByType handles GET /relationships/by_type
func (h *RelationshipHandler) ByType(w http.ResponseWriter, r *http.Request) {
	relType := r.URL.Query().Get("type")
	if relType == "" {
		h.badRequest(w, r, "type parameter is required")
		return
	}

	h.list(w, r, queries.ListRelationshipsQuery{Type: valueobjects.RelationshipType(relType)})
}

// BetweenEntities handles GET /relationships/between_entities
func (h *RelationshipHandler) BetweenEntities(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if params.Get("source_id") == "" || params.Get("target_id") == "" {
		h.badRequest(w, r, "source_id and target_id parameters are required")
		return
	}

	sourceID, err := valueobjects.ParseEntityID(params.Get("source_id"))
	if err != nil {
		h.badRequest(w, r, "invalid source_id")
		return
	}
	targetID, err := valueobjects.ParseEntityID(params.Get("target_id"))
	if err != nil {
		h.badRequest(w, r, "invalid target_id")
		return
	}

	h.list(w, r, queries.ListRelationshipsQuery{SourceID: &sourceID, TargetID: &targetID})
}

// GetRelationship handles GET /relationships/{relationshipID}
func (h *RelationshipHandler) GetRelationship(w http.ResponseWriter, r *http.Request) {
	relationshipID, ok := h.relationshipID(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetRelationshipQuery{RelationshipID: relationshipID})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// CreateRelationship handles POST /relationships
func (h *RelationshipHandler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateRelationshipCommand
	if err := common.ParseJSONBody(w, r, &cmd, common.MaxBodyBytes); err != nil {
		h.badRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(cmd); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, result)
}

// UpdateRelationship handles PUT /relationships/{relationshipID}
func (h *RelationshipHandler) UpdateRelationship(w http.ResponseWriter, r *http.Request) {
	relationshipID, ok := h.relationshipID(w, r)
	if !ok {
		return
	}

	var cmd commands.UpdateRelationshipCommand
	if err := common.ParseJSONBody(w, r, &cmd, common.MaxBodyBytes); err != nil {
		h.badRequest(w, r, "invalid request body: "+err.Error())
		return
	}
	cmd.RelationshipID = relationshipID

	if err := utils.ValidateStruct(cmd); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// PatchRelationship handles PATCH /relationships/{relationshipID}
func (h *RelationshipHandler) PatchRelationship(w http.ResponseWriter, r *http.Request) {
	relationshipID, ok := h.relationshipID(w, r)
	if !ok {
		return
	}

	var cmd commands.PatchRelationshipCommand
	if err := common.ParseJSONBody(w, r, &cmd, common.MaxBodyBytes); err != nil {
		h.badRequest(w, r, "invalid request body: "+err.Error())
		return
	}
	cmd.RelationshipID = relationshipID

	if err := utils.ValidateStruct(cmd); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// DeleteRelationship handles DELETE /relationships/{relationshipID}
func (h *RelationshipHandler) DeleteRelationship(w http.ResponseWriter, r *http.Request) {
	relationshipID, ok := h.relationshipID(w, r)
	if !ok {
		return
	}

	cmd := commands.DeleteRelationshipCommand{RelationshipID: relationshipID}
	if _, err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.respondError(w, r, err)
		return
	}

	common.RespondNoContent(w)
}

// RelationshipTypes handles GET /relationship-types
func (h *RelationshipHandler) RelationshipTypes(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, valueobjects.RelationshipTypeChoices)
}

func (h *RelationshipHandler) list(w http.ResponseWriter, r *http.Request, query queries.ListRelationshipsQuery) {
	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *RelationshipHandler) relationshipID(w http.ResponseWriter, r *http.Request) (valueobjects.RelationshipID, bool) {
	id, err := valueobjects.ParseRelationshipID(chi.URLParam(r, "relationshipID"))
	if err != nil {
		h.notFound(w, r, "relationship")
		return 0, false
	}
	return id, true
}

func optionalEntityID(s string) (*valueobjects.EntityID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := valueobjects.ParseEntityID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
