package handlers

import (
	"net/http"
	"strings"

	"kgraph/application/commands"
	"kgraph/application/commands/bus"
	"kgraph/application/queries"
	querybus "kgraph/application/queries/bus"
	domainconfig "kgraph/domain/config"
	"kgraph/domain/core/valueobjects"
	"kgraph/pkg/common"
	pkgerrors "kgraph/pkg/errors"
	"kgraph/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EntityHandler handles entity-related HTTP requests
type EntityHandler struct {
	responder
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	cfg        *domainconfig.DomainConfig
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	cfg *domainconfig.DomainConfig,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *EntityHandler {
	return &EntityHandler{
		responder:  responder{errors: errorHandler, logger: logger},
		commandBus: commandBus,
		queryBus:   queryBus,
		cfg:        cfg,
	}
}

// ListEntities handles GET /entities
func (h *EntityHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	query := queries.ListEntitiesQuery{
		Type: valueobjects.EntityType(r.URL.Query().Get("type")),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// SearchEntities handles GET /entities/search
func (h *EntityHandler) SearchEntities(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractPaginationParams(r, h.cfg.DefaultSearchPageSize, h.cfg.MaxSearchPageSize)

	query := queries.SearchEntitiesQuery{
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		Type:     valueobjects.EntityType(r.URL.Query().Get("type")),
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetEntity handles GET /entities/{entityID}
func (h *EntityHandler) GetEntity(w http.ResponseWriter, r *http.Request) {
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetEntityQuery{EntityID: entityID})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// CreateEntity handles POST /entities
func (h *EntityHandler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateEntityCommand
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

// UpdateEntity handles PUT /entities/{entityID}
func (h *EntityHandler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	var cmd commands.UpdateEntityCommand
	if err := common.ParseJSONBody(w, r, &cmd, common.MaxBodyBytes); err != nil {
		h.badRequest(w, r, "invalid request body: "+err.Error())
		return
	}
	cmd.EntityID = entityID

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

// PatchEntity handles PATCH /entities/{entityID}
func (h *EntityHandler) PatchEntity(w http.ResponseWriter, r *http.Request) {
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	var cmd commands.PatchEntityCommand
	if err := common.ParseJSONBody(w, r, &cmd, common.MaxBodyBytes); err != nil {
		h.badRequest(w, r, "invalid request body: "+err.Error())
		return
	}
	cmd.EntityID = entityID

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

// DeleteEntity handles DELETE /entities/{entityID}
func (h *EntityHandler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DeleteEntityCommand{EntityID: entityID}); err != nil {
		h.respondError(w, r, err)
		return
	}

	common.RespondNoContent(w)
}

func (h *EntityHandler) entityID(w http.ResponseWriter, r *http.Request) (valueobjects.EntityID, bool) {
	id, err := valueobjects.ParseEntityID(chi.URLParam(r, "entityID"))
	if err != nil {
		h.notFound(w, r, "entity")
		return 0, false
	}
	return id, true
}
