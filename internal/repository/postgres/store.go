package postgres

import (
	"context"

	"github.com/and161185/packtrip/internal/errs"
	"github.com/and161185/packtrip/internal/repository"
	"github.com/jackc/pgx/v5"
)

// Store implements repository.Store on top of a pool or a snapshot transaction.
type Store struct {
	db *DB
	q  querier
}

var _ repository.Store = (*Store)(nil)

// NewStore constructs a pool-backed store.
func NewStore(db *DB) *Store { return &Store{db: db, q: db.Pool} }

// Trips returns the trip repository of this store.
func (s *Store) Trips() repository.TripRepository { return &TripRepo{db: s.db, q: s.q} }

// Packing returns the packing record repository of this store.
func (s *Store) Packing() repository.PackingRepository { return &PackingRepo{q: s.q} }

// Catalog returns the inventory catalog repository of this store.
func (s *Store) Catalog() repository.CatalogRepository { return &CatalogRepo{q: s.q} }

// InSnapshot runs fn in a REPEATABLE READ transaction so reconciliation and the
// following reads observe the same catalog.
func (s *Store) InSnapshot(ctx context.Context, fn func(repository.Store) error) error {
	err := inTx(ctx, s.db, pgx.TxOptions{IsoLevel: pgx.RepeatableRead}, func(tx pgx.Tx) error {
		return fn(&Store{db: s.db, q: tx})
	})
	return errs.Store("snapshot", err)
}
