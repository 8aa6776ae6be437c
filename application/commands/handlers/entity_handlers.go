package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"kgraph/application/commands"
	"kgraph/application/ports"
	"kgraph/application/queries"
	"kgraph/domain/config"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	"kgraph/domain/events"
	pkgerrors "kgraph/pkg/errors"
)

// EntityCommandHandler handles entity writes
type EntityCommandHandler struct {
	entityRepo ports.EntityRepository
	publisher  ports.EventPublisher
	cfg        *config.DomainConfig
	logger     *zap.Logger
}

// NewEntityCommandHandler creates a new entity command handler
func NewEntityCommandHandler(
	entityRepo ports.EntityRepository,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *EntityCommandHandler {
	return &EntityCommandHandler{
		entityRepo: entityRepo,
		publisher:  publisher,
		cfg:        cfg,
		logger:     logger,
	}
}

// CreateEntity executes the create entity command
func (h *EntityCommandHandler) CreateEntity(ctx context.Context, cmd commands.CreateEntityCommand) (*queries.EntityView, error) {
	entity, err := entities.NewEntity(cmd.Name, valueobjects.EntityType(cmd.EntityType), cmd.Description, h.cfg)
	if err != nil {
		return nil, err
	}

	if err := h.entityRepo.Save(ctx, entity); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save entity")
	}

	publish(ctx, h.publisher, h.logger, events.NewEntityCreated(entity, time.Now().UTC()))

	h.logger.Info("Entity created",
		zap.String("entityID", entity.ID().String()),
		zap.String("entityType", entity.Type().String()),
	)

	view := queries.NewEntityView(entity)
	return &view, nil
}

// UpdateEntity executes the update entity command
func (h *EntityCommandHandler) UpdateEntity(ctx context.Context, cmd commands.UpdateEntityCommand) (*queries.EntityView, error) {
	entity, err := h.entityRepo.GetByID(ctx, cmd.EntityID)
	if err != nil {
		return nil, err
	}
	return h.replace(ctx, entity, cmd.Name, valueobjects.EntityType(cmd.EntityType), cmd.Description)
}

// PatchEntity executes the partial update command. Absent fields keep their
// stored values.
func (h *EntityCommandHandler) PatchEntity(ctx context.Context, cmd commands.PatchEntityCommand) (*queries.EntityView, error) {
	entity, err := h.entityRepo.GetByID(ctx, cmd.EntityID)
	if err != nil {
		return nil, err
	}

	name, entityType, description := entity.Name(), entity.Type(), entity.Description()
	if cmd.Name != nil {
		name = *cmd.Name
	}
	if cmd.EntityType != nil {
		entityType = valueobjects.EntityType(*cmd.EntityType)
	}
	if cmd.Description != nil {
		description = *cmd.Description
	}

	return h.replace(ctx, entity, name, entityType, description)
}

func (h *EntityCommandHandler) replace(
	ctx context.Context,
	entity *entities.Entity,
	name string,
	entityType valueobjects.EntityType,
	description string,
) (*queries.EntityView, error) {
	if err := entity.Update(name, entityType, description, h.cfg); err != nil {
		return nil, err
	}

	if err := h.entityRepo.Save(ctx, entity); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to save entity %s", entity.ID())
	}

	publish(ctx, h.publisher, h.logger, events.NewEntityUpdated(entity, time.Now().UTC()))

	h.logger.Info("Entity updated", zap.String("entityID", entity.ID().String()))

	view := queries.NewEntityView(entity)
	return &view, nil
}

// DeleteEntity executes the delete entity command. Relationships touching
// the entity are removed by the repository.
func (h *EntityCommandHandler) DeleteEntity(ctx context.Context, cmd commands.DeleteEntityCommand) (interface{}, error) {
	if _, err := h.entityRepo.GetByID(ctx, cmd.EntityID); err != nil {
		return nil, err
	}

	if err := h.entityRepo.Delete(ctx, cmd.EntityID); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to delete entity")
	}

	publish(ctx, h.publisher, h.logger, events.NewEntityDeleted(cmd.EntityID, time.Now().UTC()))

	h.logger.Info("Entity deleted", zap.String("entityID", cmd.EntityID.String()))
	return nil, nil
}
