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

const entityColumns = "id, name, entity_type, description, created_at"

// EntityRepository implements ports.EntityRepository on PostgreSQL
type EntityRepository struct {
	db querier
}

// NewEntityRepository creates a new entity repository
func NewEntityRepository(pool *pgxpool.Pool) *EntityRepository {
	return &EntityRepository{db: pool}
}

// Save inserts an entity with a zero ID or updates an existing one
func (r *EntityRepository) Save(ctx context.Context, e *entities.Entity) error {
	if e.ID().IsZero() {
		var id int64
		err := r.db.QueryRow(ctx,
			`INSERT INTO entities (name, entity_type, description, created_at)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			e.Name(), e.Type().String(), e.Description(), e.CreatedAt(),
		).Scan(&id)
		if err != nil {
			return translate(err, "insert entity", "entity")
		}
		e.AssignID(valueobjects.EntityID(id))
		return nil
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE entities SET name = $2, entity_type = $3, description = $4 WHERE id = $1`,
		e.ID().Int64(), e.Name(), e.Type().String(), e.Description(),
	)
	if err != nil {
		return translate(err, "update entity", "entity")
	}
	if tag.RowsAffected() == 0 {
		return pkgerrors.NewNotFoundError("entity")
	}
	return nil
}

// GetByID retrieves an entity by its ID
func (r *EntityRepository) GetByID(ctx context.Context, id valueobjects.EntityID) (*entities.Entity, error) {
	row := r.db.QueryRow(ctx, "SELECT "+entityColumns+" FROM entities WHERE id = $1", id.Int64())
	e, err := scanEntity(row)
	if err != nil {
		return nil, translate(err, "get entity", "entity")
	}
	return e, nil
}

// GetByIDs retrieves the entities that exist among ids
func (r *EntityRepository) GetByIDs(ctx context.Context, ids []valueobjects.EntityID) (map[valueobjects.EntityID]*entities.Entity, error) {
	found := make(map[valueobjects.EntityID]*entities.Entity, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = id.Int64()
	}

	rows, err := r.db.Query(ctx, "SELECT "+entityColumns+" FROM entities WHERE id = ANY($1)", raw)
	if err != nil {
		return nil, translate(err, "get entities", "entity")
	}
	list, err := collectEntities(rows)
	if err != nil {
		return nil, translate(err, "get entities", "entity")
	}

	for _, e := range list {
		found[e.ID()] = e
	}
	return found, nil
}

// List returns entities matching the filter
func (r *EntityRepository) List(ctx context.Context, filter ports.EntityFilter) ([]*entities.Entity, error) {
	where, args := entityWhere(filter)

	var sql strings.Builder
	sql.WriteString("SELECT " + entityColumns + " FROM entities" + where)
	if filter.NewestFirst {
		sql.WriteString(" ORDER BY created_at DESC, id DESC")
	} else {
		sql.WriteString(" ORDER BY id")
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sql, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sql, " OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sql.String(), args...)
	if err != nil {
		return nil, translate(err, "list entities", "entity")
	}
	list, err := collectEntities(rows)
	if err != nil {
		return nil, translate(err, "list entities", "entity")
	}
	return list, nil
}

// Count returns the number of entities matching the filter
func (r *EntityRepository) Count(ctx context.Context, filter ports.EntityFilter) (int, error) {
	where, args := entityWhere(filter)

	var n int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM entities"+where, args...).Scan(&n); err != nil {
		return 0, translate(err, "count entities", "entity")
	}
	return n, nil
}

// Delete removes an entity. Relationships go with it through ON DELETE CASCADE.
func (r *EntityRepository) Delete(ctx context.Context, id valueobjects.EntityID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM entities WHERE id = $1", id.Int64())
	if err != nil {
		return translate(err, "delete entity", "entity")
	}
	if tag.RowsAffected() == 0 {
		return pkgerrors.NewNotFoundError("entity")
	}
	return nil
}

func entityWhere(filter ports.EntityFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Type != "" {
		args = append(args, filter.Type.String())
		conds = append(conds, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if filter.NameContains != "" {
		args = append(args, "%"+escapeLike(filter.NameContains)+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func scanEntity(row pgx.Row) (*entities.Entity, error) {
	var (
		id          int64
		name        string
		entityType  string
		description string
		createdAt   time.Time
	)
	if err := row.Scan(&id, &name, &entityType, &description, &createdAt); err != nil {
		return nil, err
	}
	return entities.ReconstructEntity(
		valueobjects.EntityID(id), name, valueobjects.EntityType(entityType), description, createdAt,
	), nil
}

func collectEntities(rows pgx.Rows) ([]*entities.Entity, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.Entity, error) {
		return scanEntity(row)
	})
}

var _ ports.EntityRepository = (*EntityRepository)(nil)
