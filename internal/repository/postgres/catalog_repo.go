package postgres

import (
	"context"
	"errors"

	"github.com/and161185/packtrip/internal/errs"
	"github.com/and161185/packtrip/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// CatalogRepo reads the owner's inventory. It never writes.
type CatalogRepo struct{ q querier }

// NewCatalogRepo constructs a catalog repository.
func NewCatalogRepo(db *DB) *CatalogRepo { return &CatalogRepo{q: db.Pool} }

// ListCategories returns the owner's categories ordered by name.
func (r *CatalogRepo) ListCategories(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	const q = `
SELECT id, user_id, name, COALESCE(description,'')
FROM inventory_items_categories
WHERE user_id=$1
ORDER BY name`
	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		return nil, errs.Store("catalog.categories", err)
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description); err != nil {
			return nil, errs.Store("catalog.categories", err)
		}
		out = append(out, c)
	}
	return out, errs.Store("catalog.categories", rows.Err())
}

// ListItems returns the owner's inventory ordered by name.
func (r *CatalogRepo) ListItems(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error) {
	const q = `
SELECT id, user_id, name, COALESCE(description,''), weight, category_id
FROM inventory_items
WHERE user_id=$1
ORDER BY name`
	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		return nil, errs.Store("catalog.items", err)
	}
	defer rows.Close()

	out := []model.InventoryItem{}
	for rows.Next() {
		var it model.InventoryItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Description, &it.Weight, &it.CategoryID); err != nil {
			return nil, errs.Store("catalog.items", err)
		}
		out = append(out, it)
	}
	return out, errs.Store("catalog.items", rows.Err())
}

// GetItem returns one inventory item by id.
func (r *CatalogRepo) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error) {
	const q = `
SELECT id, user_id, name, COALESCE(description,''), weight, category_id
FROM inventory_items WHERE user_id=$1 AND id=$2`
	var it model.InventoryItem
	err := r.q.QueryRow(ctx, q, userID, itemID).Scan(&it.ID, &it.UserID, &it.Name, &it.Description, &it.Weight, &it.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store("catalog.get_item", err)
	}
	return &it, nil
}
