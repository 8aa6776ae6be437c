package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kgraph/application/ports"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

const relationshipColumns = "id, source_entity_id, target_entity_id, relationship_type, description, confidence, created_at"

// RelationshipRepository implements ports.RelationshipRepository on PostgreSQL
type RelationshipRepository struct {
	db querier
}

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(pool *pgxpool.Pool) *RelationshipRepository {
	return &RelationshipRepository{db: pool}
}

// Save inserts a relationship with a zero ID or replaces an existing one.
// A missing endpoint surfaces as NOT_FOUND through the foreign key.
func (r *RelationshipRepository) Save(ctx context.Context, rel *entities.Relationship) error {
	if !rel.ID().IsZero() {
		return r.update(ctx, rel)
	}

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO relationships
		   (source_entity_id, target_entity_id, relationship_type, description, confidence, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		rel.SourceID().Int64(),
		rel.TargetID().Int64(),
		rel.Type().String(),
		rel.Description(),
		rel.Confidence(),
		rel.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return translate(err, "insert relationship", "relationship")
	}

	rel.AssignID(valueobjects.RelationshipID(id))
	return nil
}

func (r *RelationshipRepository) update(ctx context.Context, rel *entities.Relationship) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE relationships
		 SET source_entity_id = $2, target_entity_id = $3, relationship_type = $4, description = $5, confidence = $6
		 WHERE id = $1`,
		rel.ID().Int64(),
		rel.SourceID().Int64(),
		rel.TargetID().Int64(),
		rel.Type().String(),
		rel.Description(),
		rel.Confidence(),
	)
	if err != nil {
		return translate(err, "update relationship", "relationship")
	}
	if tag.RowsAffected() == 0 {
		return pkgerrors.NewNotFoundError("relationship")
	}
	return nil
}

// GetByID retrieves a relationship by its ID
func (r *RelationshipRepository) GetByID(ctx context.Context, id valueobjects.RelationshipID) (*entities.Relationship, error) {
	row := r.db.QueryRow(ctx, "SELECT "+relationshipColumns+" FROM relationships WHERE id = $1", id.Int64())
	rel, err := scanRelationship(row)
	if err != nil {
		return nil, translate(err, "get relationship", "relationship")
	}
	return rel, nil
}

// List returns relationships matching the filter in ascending ID order
func (r *RelationshipRepository) List(ctx context.Context, filter ports.RelationshipFilter) ([]*entities.Relationship, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.SourceID != nil {
		args = append(args, filter.SourceID.Int64())
		conds = append(conds, fmt.Sprintf("source_entity_id = $%d", len(args)))
	}
	if filter.TargetID != nil {
		args = append(args, filter.TargetID.Int64())
		conds = append(conds, fmt.Sprintf("target_entity_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type.String())
		conds = append(conds, fmt.Sprintf("relationship_type = $%d", len(args)))
	}

	sql := "SELECT " + relationshipColumns + " FROM relationships"
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY id"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "list relationships", "relationship")
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.Relationship, error) {
		return scanRelationship(row)
	})
	if err != nil {
		return nil, translate(err, "list relationships", "relationship")
	}
	return list, nil
}

// Delete removes a relationship
func (r *RelationshipRepository) Delete(ctx context.Context, id valueobjects.RelationshipID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM relationships WHERE id = $1", id.Int64())
	if err != nil {
		return translate(err, "delete relationship", "relationship")
	}
	if tag.RowsAffected() == 0 {
		return pkgerrors.NewNotFoundError("relationship")
	}
	return nil
}

func scanRelationship(row pgx.Row) (*entities.Relationship, error) {
	var (
		id, sourceID, targetID int64
		relType, description   string
		confidence             float64
		createdAt              time.Time
	)
	if err := row.Scan(&id, &sourceID, &targetID, &relType, &description, &confidence, &createdAt); err != nil {
		return nil, err
	}
	return entities.ReconstructRelationship(
		valueobjects.RelationshipID(id),
		valueobjects.EntityID(sourceID),
		valueobjects.EntityID(targetID),
		valueobjects.RelationshipType(relType),
		description,
		confidence,
		createdAt,
	), nil
}

var _ ports.RelationshipRepository = (*RelationshipRepository)(nil)
