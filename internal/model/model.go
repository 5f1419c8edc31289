// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Category groups inventory items. Managed outside this service.
type Category struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string // empty when not set
}

// InventoryItem is a piece of gear in the owner's catalog.
type InventoryItem struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Weight      int64 // grams
	CategoryID  uuid.UUID
}

// Trip is a planned journey with a lifecycle state.
type Trip struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	DateStart time.Time
	DateEnd   time.Time
	State     TripState
	Location  string
	TempMin   *int
	TempMax   *int
	Comment   string
	CreatedAt time.Time
}

// NewTrip is the input for trip creation.
type NewTrip struct {
	Name      string    `validate:"required,max=200"`
	DateStart time.Time `validate:"required"`
	DateEnd   time.Time `validate:"required,gtefield=DateStart"`
	Location  string    `validate:"max=200"`
	TempMin   *int      `validate:"omitempty,min=-100,max=100"`
	TempMax   *int      `validate:"omitempty,min=-100,max=100"`
	Comment   string
}

// PackingRecord is the per-(trip, item) packing state. Composite key (TripID, ItemID).
type PackingRecord struct {
	TripID uuid.UUID
	ItemID uuid.UUID
	UserID uuid.UUID
	Picked bool
	Packed bool
	Ready  bool
	New    bool // item appeared in the catalog after the trip got underway
}

// Progression reports the ordered packing stage of the record.
func (r PackingRecord) Progression() Progression {
	return ProgressionOf(r.Picked, r.Packed, r.Ready)
}

// TripItem is a packing record joined with its inventory item.
type TripItem struct {
	Item   InventoryItem
	Picked bool
	Packed bool
	Ready  bool
	New    bool
}

// Record returns the packing part of the joined row.
func (ti TripItem) Record(tripID uuid.UUID) PackingRecord {
	return PackingRecord{
		TripID: tripID,
		ItemID: ti.Item.ID,
		UserID: ti.Item.UserID,
		Picked: ti.Picked,
		Packed: ti.Packed,
		Ready:  ti.Ready,
		New:    ti.New,
	}
}

// TripCategory is a category with the trip's packing rows for it. Items is never nil.
type TripCategory struct {
	Category Category
	Items    []TripItem
}

// TripView is everything a trip detail page renders.
type TripView struct {
	Trip       Trip
	Categories []TripCategory
	Progress   Progress
}
