package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/packtrip/internal/errs"
	"github.com/and161185/packtrip/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PackingRepo implements PackingRepository using PostgreSQL.
type PackingRepo struct{ q querier }

// NewPackingRepo constructs a packing record repository.
func NewPackingRepo(db *DB) *PackingRepo { return &PackingRepo{q: db.Pool} }

// TripState reads the state of an owned trip.
func (r *PackingRepo) TripState(ctx context.Context, userID, tripID uuid.UUID) (model.TripState, error) {
	const q = `SELECT state FROM trips WHERE id=$1 AND user_id=$2`
	var state string
	if err := r.q.QueryRow(ctx, q, tripID, userID).Scan(&state); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.StateInit, errs.ErrNotFound
		}
		return model.StateInit, errs.Store("packing.trip_state", err)
	}
	st, err := model.ParseTripState(state)
	if err != nil {
		return model.StateInit, errs.Store("packing.trip_state", err)
	}
	return st, nil
}

// MissingItemIDs anti-joins the owner's inventory against the trip's records.
func (r *PackingRepo) MissingItemIDs(ctx context.Context, userID, tripID uuid.UUID) ([]uuid.UUID, error) {
	const q = `
SELECT i.id
FROM inventory_items i
LEFT JOIN trip_items t ON t.item_id = i.id AND t.trip_id = $1 AND t.user_id = $2
WHERE i.user_id = $2 AND t.item_id IS NULL
ORDER BY i.id`
	rows, err := r.q.Query(ctx, q, tripID, userID)
	if err != nil {
		return nil, errs.Store("packing.missing", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, errs.Store("packing.missing", err)
		}
		ids = append(ids, id)
	}
	return ids, errs.Store("packing.missing", rows.Err())
}

// InsertRecord writes a record; an existing (trip, item) row is left as is.
func (r *PackingRepo) InsertRecord(ctx context.Context, rec model.PackingRecord) (bool, error) {
	const q = `
INSERT INTO trip_items (trip_id, item_id, user_id, pick, pack, ready, new)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (trip_id, item_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, q, rec.TripID, rec.ItemID, rec.UserID, rec.Picked, rec.Packed, rec.Ready, rec.New)
	if err != nil {
		return false, errs.Store("packing.insert", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Find returns a single record joined with its inventory item.
func (r *PackingRepo) Find(ctx context.Context, userID, tripID, itemID uuid.UUID) (*model.TripItem, error) {
	const q = `
SELECT i.id, i.user_id, i.name, COALESCE(i.description,''), i.weight, i.category_id,
       t.pick, t.pack, t.ready, t.new
FROM trip_items t
JOIN inventory_items i ON i.id = t.item_id AND i.user_id = t.user_id
WHERE t.trip_id=$1 AND t.item_id=$2 AND t.user_id=$3`
	var ti model.TripItem
	err := r.q.QueryRow(ctx, q, tripID, itemID, userID).Scan(
		&ti.Item.ID, &ti.Item.UserID, &ti.Item.Name, &ti.Item.Description, &ti.Item.Weight, &ti.Item.CategoryID,
		&ti.Picked, &ti.Packed, &ti.Ready, &ti.New,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store("packing.find", err)
	}
	return &ti, nil
}

// SetFlag updates exactly one flag column of one record.
func (r *PackingRepo) SetFlag(ctx context.Context, userID, tripID, itemID uuid.UUID, f model.Flag, value bool) error {
	col, ok := f.Column()
	if !ok {
		return fmt.Errorf("%w: flag %s", errs.ErrValidation, f)
	}
	q := `UPDATE trip_items SET ` + col + `=$4 WHERE trip_id=$1 AND item_id=$2 AND user_id=$3`
	tag, err := r.q.Exec(ctx, q, tripID, itemID, userID, value)
	if err != nil {
		return errs.Store("packing.set_flag", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Categories outer-joins all owner categories with the trip's records.
// Categories without records are returned with an empty item list.
func (r *PackingRepo) Categories(ctx context.Context, userID, tripID uuid.UUID) ([]model.TripCategory, error) {
	const q = `
SELECT c.id, c.name, COALESCE(c.description,''),
       ti.id, ti.name, ti.description, ti.weight, ti.pick, ti.pack, ti.ready, ti.new
FROM inventory_items_categories c
LEFT JOIN (
    SELECT i.id, i.name, COALESCE(i.description,'') AS description, i.weight, i.category_id,
           t.pick, t.pack, t.ready, t.new
    FROM trip_items t
    JOIN inventory_items i ON i.id = t.item_id AND i.user_id = t.user_id
    WHERE t.trip_id = $1 AND t.user_id = $2
) ti ON ti.category_id = c.id
WHERE c.user_id = $2
ORDER BY c.name, c.id, ti.name`
	rows, err := r.q.Query(ctx, q, tripID, userID)
	if err != nil {
		return nil, errs.Store("packing.categories", err)
	}
	defer rows.Close()

	out := []model.TripCategory{}
	for rows.Next() {
		var (
			c      model.Category
			itemID uuid.NullUUID
			name   pgtype.Text
			desc   pgtype.Text
			weight pgtype.Int8
			pick   pgtype.Bool
			pack   pgtype.Bool
			ready  pgtype.Bool
			isNew  pgtype.Bool
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Description,
			&itemID, &name, &desc, &weight, &pick, &pack, &ready, &isNew); err != nil {
			return nil, errs.Store("packing.categories", err)
		}
		c.UserID = userID
		if len(out) == 0 || out[len(out)-1].Category.ID != c.ID {
			out = append(out, model.TripCategory{Category: c, Items: []model.TripItem{}})
		}
		if !itemID.Valid {
			continue
		}
		cur := &out[len(out)-1]
		cur.Items = append(cur.Items, model.TripItem{
			Item: model.InventoryItem{
				ID:          itemID.UUID,
				UserID:      userID,
				Name:        name.String,
				Description: desc.String,
				Weight:      weight.Int64,
				CategoryID:  c.ID,
			},
			Picked: pick.Bool,
			Packed: pack.Bool,
			Ready:  ready.Bool,
			New:    isNew.Bool,
		})
	}
	return out, errs.Store("packing.categories", rows.Err())
}

// AcknowledgeNew clears the new flag on every record of the trip.
func (r *PackingRepo) AcknowledgeNew(ctx context.Context, userID, tripID uuid.UUID) (int64, error) {
	const q = `UPDATE trip_items SET new=false WHERE trip_id=$1 AND user_id=$2 AND new`
	tag, err := r.q.Exec(ctx, q, tripID, userID)
	if err != nil {
		return 0, errs.Store("packing.ack_new", err)
	}
	return tag.RowsAffected(), nil
}
