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

// RelationshipCommandHandler handles relationship writes
type RelationshipCommandHandler struct {
	entityRepo       ports.EntityRepository
	relationshipRepo ports.RelationshipRepository
	publisher        ports.EventPublisher
	cfg              *config.DomainConfig
	logger           *zap.Logger
}

// NewRelationshipCommandHandler creates a new relationship command handler
func NewRelationshipCommandHandler(
	entityRepo ports.EntityRepository,
	relationshipRepo ports.RelationshipRepository,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *RelationshipCommandHandler {
	return &RelationshipCommandHandler{
		entityRepo:       entityRepo,
		relationshipRepo: relationshipRepo,
		publisher:        publisher,
		cfg:              cfg,
		logger:           logger,
	}
}

// CreateRelationship executes the create relationship command
func (h *RelationshipCommandHandler) CreateRelationship(ctx context.Context, cmd commands.CreateRelationshipCommand) (*queries.RelationshipView, error) {
	sourceID := valueobjects.EntityID(cmd.SourceEntityID)
	targetID := valueobjects.EntityID(cmd.TargetEntityID)

	if err := h.requireEndpoints(ctx, sourceID, targetID); err != nil {
		return nil, err
	}

	confidence := h.cfg.DefaultConfidence
	if cmd.Confidence != nil {
		confidence = *cmd.Confidence
	}

	rel, err := entities.NewRelationship(
		sourceID,
		targetID,
		valueobjects.RelationshipType(cmd.RelationshipType),
		cmd.Description,
		confidence,
		h.cfg,
	)
	if err != nil {
		return nil, err
	}

	if err := h.relationshipRepo.Save(ctx, rel); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save relationship")
	}

	publish(ctx, h.publisher, h.logger, events.NewRelationshipCreated(rel, time.Now().UTC()))

	h.logger.Info("Relationship created",
		zap.String("relationshipID", rel.ID().String()),
		zap.String("sourceID", sourceID.String()),
		zap.String("targetID", targetID.String()),
	)

	view := queries.NewRelationshipView(rel)
	return &view, nil
}

// UpdateRelationship executes the full update command
func (h *RelationshipCommandHandler) UpdateRelationship(ctx context.Context, cmd commands.UpdateRelationshipCommand) (*queries.RelationshipView, error) {
	rel, err := h.relationshipRepo.GetByID(ctx, cmd.RelationshipID)
	if err != nil {
		return nil, err
	}

	confidence := h.cfg.DefaultConfidence
	if cmd.Confidence != nil {
		confidence = *cmd.Confidence
	}

	return h.replace(ctx, rel,
		valueobjects.EntityID(cmd.SourceEntityID),
		valueobjects.EntityID(cmd.TargetEntityID),
		valueobjects.RelationshipType(cmd.RelationshipType),
		cmd.Description,
		confidence,
	)
}

// PatchRelationship executes the partial update command. Absent fields keep
// their stored values.
func (h *RelationshipCommandHandler) PatchRelationship(ctx context.Context, cmd commands.PatchRelationshipCommand) (*queries.RelationshipView, error) {
	rel, err := h.relationshipRepo.GetByID(ctx, cmd.RelationshipID)
	if err != nil {
		return nil, err
	}

	sourceID, targetID := rel.SourceID(), rel.TargetID()
	relType, description, confidence := rel.Type(), rel.Description(), rel.Confidence()
	if cmd.SourceEntityID != nil {
		sourceID = valueobjects.EntityID(*cmd.SourceEntityID)
	}
	if cmd.TargetEntityID != nil {
		targetID = valueobjects.EntityID(*cmd.TargetEntityID)
	}
	if cmd.RelationshipType != nil {
		relType = valueobjects.RelationshipType(*cmd.RelationshipType)
	}
	if cmd.Description != nil {
		description = *cmd.Description
	}
	if cmd.Confidence != nil {
		confidence = *cmd.Confidence
	}

	return h.replace(ctx, rel, sourceID, targetID, relType, description, confidence)
}

func (h *RelationshipCommandHandler) replace(
	ctx context.Context,
	rel *entities.Relationship,
	sourceID, targetID valueobjects.EntityID,
	relType valueobjects.RelationshipType,
	description string,
	confidence float64,
) (*queries.RelationshipView, error) {
	if err := rel.Update(sourceID, targetID, relType, description, confidence, h.cfg); err != nil {
		return nil, err
	}

	if err := h.requireEndpoints(ctx, sourceID, targetID); err != nil {
		return nil, err
	}

	if err := h.relationshipRepo.Save(ctx, rel); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to save relationship %s", rel.ID())
	}

	publish(ctx, h.publisher, h.logger, events.NewRelationshipUpdated(rel, time.Now().UTC()))

	h.logger.Info("Relationship updated",
		zap.String("relationshipID", rel.ID().String()),
		zap.String("sourceID", sourceID.String()),
		zap.String("targetID", targetID.String()),
	)

	view := queries.NewRelationshipView(rel)
	return &view, nil
}

func (h *RelationshipCommandHandler) requireEndpoints(ctx context.Context, sourceID, targetID valueobjects.EntityID) error {
	found, err := h.entityRepo.GetByIDs(ctx, []valueobjects.EntityID{sourceID, targetID})
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load relationship endpoints")
	}
	if _, ok := found[sourceID]; !ok {
		return pkgerrors.NewNotFoundError("source entity")
	}
	if _, ok := found[targetID]; !ok {
		return pkgerrors.NewNotFoundError("target entity")
	}
	return nil
}

// DeleteRelationship executes the delete relationship command
func (h *RelationshipCommandHandler) DeleteRelationship(ctx context.Context, cmd commands.DeleteRelationshipCommand) (interface{}, error) {
	if _, err := h.relationshipRepo.GetByID(ctx, cmd.RelationshipID); err != nil {
		return nil, err
	}

	if err := h.relationshipRepo.Delete(ctx, cmd.RelationshipID); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to delete relationship")
	}

	publish(ctx, h.publisher, h.logger, events.NewRelationshipDeleted(cmd.RelationshipID, time.Now().UTC()))

	h.logger.Info("Relationship deleted", zap.String("relationshipID", cmd.RelationshipID.String()))
	return nil, nil
}
