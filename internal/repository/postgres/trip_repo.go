package postgres

import (
	"context"
	"errors"

	"github.com/and161185/packtrip/internal/errs"
	"github.com/and161185/packtrip/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// TripRepo implements TripRepository using PostgreSQL.
type TripRepo struct {
	db *DB
	q  querier
}

// NewTripRepo constructs a trip repository.
func NewTripRepo(db *DB) *TripRepo { return &TripRepo{db: db, q: db.Pool} }

const tripColumns = `id, user_id, name, date_start, date_end, state, COALESCE(location,''), temp_min, temp_max, COALESCE(comment,''), created_at`

// Create inserts the trip and seeds packing records for the whole inventory in one transaction.
func (r *TripRepo) Create(ctx context.Context, t *model.Trip) error {
	const ins = `
INSERT INTO trips (id, user_id, name, date_start, date_end, state, location, temp_min, temp_max, comment)
VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),$8,$9,NULLIF($10,''))
RETURNING created_at`
	const seed = `
INSERT INTO trip_items (trip_id, item_id, user_id, pick, pack, ready, new)
SELECT $1, i.id, i.user_id, false, false, false, false
FROM inventory_items i
WHERE i.user_id=$2`

	err := inTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, ins,
			t.ID, t.UserID, t.Name, t.DateStart, t.DateEnd, t.State.String(),
			t.Location, t.TempMin, t.TempMax, t.Comment,
		).Scan(&t.CreatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, seed, t.ID, t.UserID)
		return err
	})
	return errs.Store("trips.create", err)
}

// Get loads a trip by id for its owner.
func (r *TripRepo) Get(ctx context.Context, userID, tripID uuid.UUID) (*model.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id=$1 AND user_id=$2`
	t, err := scanTrip(r.q.QueryRow(ctx, q, tripID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store("trips.get", err)
	}
	return t, nil
}

// List returns all trips of an owner.
func (r *TripRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE user_id=$1 ORDER BY date_start DESC, name ASC`
	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		return nil, errs.Store("trips.list", err)
	}
	defer rows.Close()

	out := []model.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, errs.Store("trips.list", err)
		}
		out = append(out, *t)
	}
	return out, errs.Store("trips.list", rows.Err())
}

// SetState overwrites the trip state without looking at the current one.
func (r *TripRepo) SetState(ctx context.Context, userID, tripID uuid.UUID, s model.TripState) (bool, error) {
	const q = `UPDATE trips SET state=$3 WHERE id=$1 AND user_id=$2`
	tag, err := r.q.Exec(ctx, q, tripID, userID, s.String())
	if err != nil {
		return false, errs.Store("trips.set_state", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanTrip(row pgx.Row) (*model.Trip, error) {
	var (
		t       model.Trip
		state   string
		tempMin pgtype.Int4
		tempMax pgtype.Int4
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.DateStart, &t.DateEnd, &state,
		&t.Location, &tempMin, &tempMax, &t.Comment, &t.CreatedAt); err != nil {
		return nil, err
	}
	st, err := model.ParseTripState(state)
	if err != nil {
		return nil, err
	}
	t.State = st
	t.TempMin = intPtr(tempMin)
	t.TempMax = intPtr(tempMax)
	return &t, nil
}

func intPtr(v pgtype.Int4) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}
