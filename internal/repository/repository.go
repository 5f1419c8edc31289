// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/packtrip/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TripRepository persists trips and their lifecycle state.
type TripRepository interface {
	// Create inserts the trip and seeds a packing record for every current
	// inventory item of the owner, atomically.
	Create(ctx context.Context, t *model.Trip) error
	// Get loads a trip owned by userID.
	Get(ctx context.Context, userID, tripID uuid.UUID) (*model.Trip, error)
	// List returns the owner's trips, most recent start date first.
	List(ctx context.Context, userID uuid.UUID) ([]model.Trip, error)
	// SetState overwrites the state and reports whether a row was affected.
	SetState(ctx context.Context, userID, tripID uuid.UUID, s model.TripState) (bool, error)
}

// PackingRepository reads and writes per-(trip, item) packing records.
type PackingRepository interface {
	// TripState returns the state of an owned trip or errs.ErrNotFound.
	TripState(ctx context.Context, userID, tripID uuid.UUID) (model.TripState, error)
	// MissingItemIDs lists owner inventory items without a record for the trip.
	MissingItemIDs(ctx context.Context, userID, tripID uuid.UUID) ([]uuid.UUID, error)
	// InsertRecord adds a record unless one already exists; reports whether it was written.
	InsertRecord(ctx context.Context, rec model.PackingRecord) (bool, error)
	// Find returns the record joined with its inventory item.
	Find(ctx context.Context, userID, tripID, itemID uuid.UUID) (*model.TripItem, error)
	// SetFlag updates one flag column; errs.ErrNotFound when nothing matched.
	SetFlag(ctx context.Context, userID, tripID, itemID uuid.UUID, f model.Flag, value bool) error
	// Categories returns every owner category with the trip's joined records.
	Categories(ctx context.Context, userID, tripID uuid.UUID) ([]model.TripCategory, error)
	// AcknowledgeNew clears the new flag on all records of the trip.
	AcknowledgeNew(ctx context.Context, userID, tripID uuid.UUID) (int64, error)
}

// CatalogRepository is read-only access to the owner's inventory.
type CatalogRepository interface {
	ListCategories(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	ListItems(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error)
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error)
}

// Store bundles the repositories of one backend.
type Store interface {
	Trips() TripRepository
	Packing() PackingRepository
	Catalog() CatalogRepository
	// InSnapshot runs fn against repositories bound to one consistent snapshot.
	// Writes made by fn are committed when it returns nil.
	InSnapshot(ctx context.Context, fn func(Store) error) error
}
