package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kgraph/application/ports"
	"kgraph/domain/core/projection"
	"kgraph/domain/core/valueobjects"
)

// snapshotOptions gives every statement in a read the same snapshot
var snapshotOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// GraphReader implements ports.GraphReader with read-only REPEATABLE READ
// transactions
type GraphReader struct {
	pool *pgxpool.Pool
}

// NewGraphReader creates a graph reader on the pool
func NewGraphReader(pool *pgxpool.Pool) *GraphReader {
	return &GraphReader{pool: pool}
}

// ReadGraph returns every entity and relationship from one snapshot
func (g *GraphReader) ReadGraph(ctx context.Context) (*ports.GraphSnapshot, error) {
	var snap ports.GraphSnapshot
	err := g.snapshot(ctx, func(ents *EntityRepository, rels *RelationshipRepository) error {
		var err error
		if snap.Entities, err = ents.List(ctx, ports.EntityFilter{}); err != nil {
			return err
		}
		snap.Relationships, err = rels.List(ctx, ports.RelationshipFilter{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// ReadNeighborhood returns the one-hop view around id from one snapshot
func (g *GraphReader) ReadNeighborhood(ctx context.Context, id valueobjects.EntityID) (*ports.Neighborhood, error) {
	var hood ports.Neighborhood
	err := g.snapshot(ctx, func(ents *EntityRepository, rels *RelationshipRepository) error {
		var err error
		if hood.Center, err = ents.GetByID(ctx, id); err != nil {
			return err
		}
		if hood.Outgoing, err = rels.List(ctx, ports.BySource(id)); err != nil {
			return err
		}
		if hood.Incoming, err = rels.List(ctx, ports.ByTarget(id)); err != nil {
			return err
		}
		hood.Neighbors, err = ents.GetByIDs(ctx, projection.NeighborIDs(id, hood.Outgoing, hood.Incoming))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &hood, nil
}

func (g *GraphReader) snapshot(ctx context.Context, fn func(*EntityRepository, *RelationshipRepository) error) error {
	tx, err := g.pool.BeginTx(ctx, snapshotOptions)
	if err != nil {
		return translate(err, "begin snapshot", "graph")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&EntityRepository{db: tx}, &RelationshipRepository{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return translate(err, "commit snapshot", "graph")
	}
	return nil
}

var _ ports.GraphReader = (*GraphReader)(nil)
