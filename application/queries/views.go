package queries

import (
	"kgraph/domain/core/entities"
	"kgraph/pkg/utils"
)

// EntityView is the API representation of an entity
type EntityView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	EntityType  string `json:"entity_type"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// NewEntityView converts a domain entity to its API representation
func NewEntityView(e *entities.Entity) EntityView {
	return EntityView{
		ID:          e.ID().Int64(),
		Name:        e.Name(),
		EntityType:  e.Type().String(),
		Description: e.Description(),
		CreatedAt:   utils.FormatTimestamp(e.CreatedAt()),
	}
}

// NewEntityViews converts a slice of entities, never returning nil
func NewEntityViews(ents []*entities.Entity) []EntityView {
	views := make([]EntityView, 0, len(ents))
	for _, e := range ents {
		views = append(views, NewEntityView(e))
	}
	return views
}

// RelationshipView is the API representation of a relationship
type RelationshipView struct {
	ID                      int64   `json:"id"`
	SourceEntityID          int64   `json:"source_entity_id"`
	TargetEntityID          int64   `json:"target_entity_id"`
	RelationshipType        string  `json:"relationship_type"`
	RelationshipTypeDisplay string  `json:"relationship_type_display"`
	Description             string  `json:"description"`
	Confidence              float64 `json:"confidence"`
	CreatedAt               string  `json:"created_at"`
}

// NewRelationshipView converts a domain relationship to its API representation
func NewRelationshipView(r *entities.Relationship) RelationshipView {
	return RelationshipView{
		ID:                      r.ID().Int64(),
		SourceEntityID:          r.SourceID().Int64(),
		TargetEntityID:          r.TargetID().Int64(),
		RelationshipType:        r.Type().String(),
		RelationshipTypeDisplay: r.Label(),
		Description:             r.Description(),
		Confidence:              r.Confidence(),
		CreatedAt:               utils.FormatTimestamp(r.CreatedAt()),
	}
}

// NewRelationshipViews converts a slice of relationships, never returning nil
func NewRelationshipViews(rels []*entities.Relationship) []RelationshipView {
	views := make([]RelationshipView, 0, len(rels))
	for _, r := range rels {
		views = append(views, NewRelationshipView(r))
	}
	return views
}
