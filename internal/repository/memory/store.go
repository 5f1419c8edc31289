// Package memory is an in-process implementation of the repository interfaces.
// It backs tests and single-user local runs; state is lost on exit.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/and161185/packtrip/internal/errs"
	"github.com/and161185/packtrip/internal/model"
	"github.com/and161185/packtrip/internal/repository"
	"github.com/gofrs/uuid/v5"
)

type recordKey struct{ trip, item uuid.UUID }

type state struct {
	categories map[uuid.UUID]model.Category
	items      map[uuid.UUID]model.InventoryItem
	trips      map[uuid.UUID]model.Trip
	records    map[recordKey]model.PackingRecord
	writes     int
}

// Store keeps every table in maps guarded by one RWMutex.
type Store struct {
	mu   *sync.RWMutex
	st   *state
	held bool // lock already taken by InSnapshot
}

var _ repository.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		mu: &sync.RWMutex{},
		st: &state{
			categories: map[uuid.UUID]model.Category{},
			items:      map[uuid.UUID]model.InventoryItem{},
			trips:      map[uuid.UUID]model.Trip{},
			records:    map[recordKey]model.PackingRecord{},
		},
	}
}

func (s *Store) rlock() func() {
	if s.held {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock() func() {
	if s.held {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Trips returns the trip repository.
func (s *Store) Trips() repository.TripRepository { return tripRepo{s} }

// Packing returns the packing record repository.
func (s *Store) Packing() repository.PackingRepository { return packingRepo{s} }

// Catalog returns the catalog repository.
func (s *Store) Catalog() repository.CatalogRepository { return catalogRepo{s} }

// InSnapshot holds the write lock for the whole callback. Writes are not rolled back on error.
func (s *Store) InSnapshot(ctx context.Context, fn func(repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock := s.lock()
	defer unlock()
	return fn(&Store{mu: s.mu, st: s.st, held: true})
}

// PutCategory adds or replaces a category. Catalog maintenance belongs to
// other services; this exists for seeding.
func (s *Store) PutCategory(c model.Category) {
	defer s.lock()()
	s.st.categories[c.ID] = c
}

// PutItem adds or replaces an inventory item.
func (s *Store) PutItem(it model.InventoryItem) {
	defer s.lock()()
	s.st.items[it.ID] = it
}

// DeleteItem removes an inventory item; packing records referencing it stay.
func (s *Store) DeleteItem(id uuid.UUID) {
	defer s.lock()()
	delete(s.st.items, id)
}

// Writes counts record and trip mutations since creation.
func (s *Store) Writes() int {
	defer s.rlock()()
	return s.st.writes
}

// Record returns the raw packing record, including orphans.
func (s *Store) Record(tripID, itemID uuid.UUID) (model.PackingRecord, bool) {
	defer s.rlock()()
	r, ok := s.st.records[recordKey{tripID, itemID}]
	return r, ok
}

type tripRepo struct{ s *Store }

func (r tripRepo) Create(ctx context.Context, t *model.Trip) error {
	if err := ctx.Err(); err != nil {
		return errs.Store("trips.create", err)
	}
	defer r.s.lock()()
	st := r.s.st
	st.trips[t.ID] = *t
	st.writes++
	for _, it := range st.items {
		if it.UserID != t.UserID {
			continue
		}
		st.records[recordKey{t.ID, it.ID}] = model.PackingRecord{TripID: t.ID, ItemID: it.ID, UserID: t.UserID}
		st.writes++
	}
	return nil
}

func (r tripRepo) Get(_ context.Context, userID, tripID uuid.UUID) (*model.Trip, error) {
	defer r.s.rlock()()
	t, ok := r.s.st.trips[tripID]
	if !ok || t.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return &t, nil
}

func (r tripRepo) List(_ context.Context, userID uuid.UUID) ([]model.Trip, error) {
	defer r.s.rlock()()
	out := []model.Trip{}
	for _, t := range r.s.st.trips {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateStart.Equal(out[j].DateStart) {
			return out[i].DateStart.After(out[j].DateStart)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r tripRepo) SetState(_ context.Context, userID, tripID uuid.UUID, s model.TripState) (bool, error) {
	defer r.s.lock()()
	t, ok := r.s.st.trips[tripID]
	if !ok || t.UserID != userID {
		return false, nil
	}
	t.State = s
	r.s.st.trips[tripID] = t
	r.s.st.writes++
	return true, nil
}

type packingRepo struct{ s *Store }

func (r packingRepo) TripState(_ context.Context, userID, tripID uuid.UUID) (model.TripState, error) {
	defer r.s.rlock()()
	t, ok := r.s.st.trips[tripID]
	if !ok || t.UserID != userID {
		return model.StateInit, errs.ErrNotFound
	}
	return t.State, nil
}

func (r packingRepo) MissingItemIDs(_ context.Context, userID, tripID uuid.UUID) ([]uuid.UUID, error) {
	defer r.s.rlock()()
	var ids []uuid.UUID
	for id, it := range r.s.st.items {
		if it.UserID != userID {
			continue
		}
		if _, ok := r.s.st.records[recordKey{tripID, id}]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (r packingRepo) InsertRecord(ctx context.Context, rec model.PackingRecord) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errs.Store("packing.insert", err)
	}
	defer r.s.lock()()
	k := recordKey{rec.TripID, rec.ItemID}
	if _, ok := r.s.st.records[k]; ok {
		return false, nil
	}
	r.s.st.records[k] = rec
	r.s.st.writes++
	return true, nil
}

func (r packingRepo) Find(_ context.Context, userID, tripID, itemID uuid.UUID) (*model.TripItem, error) {
	defer r.s.rlock()()
	rec, ok := r.s.st.records[recordKey{tripID, itemID}]
	if !ok || rec.UserID != userID {
		return nil, errs.ErrNotFound
	}
	it, ok := r.s.st.items[itemID]
	if !ok || it.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return &model.TripItem{Item: it, Picked: rec.Picked, Packed: rec.Packed, Ready: rec.Ready, New: rec.New}, nil
}

func (r packingRepo) SetFlag(_ context.Context, userID, tripID, itemID uuid.UUID, f model.Flag, value bool) error {
	defer r.s.lock()()
	k := recordKey{tripID, itemID}
	rec, ok := r.s.st.records[k]
	if !ok || rec.UserID != userID {
		return errs.ErrNotFound
	}
	switch f {
	case model.FlagPick:
		rec.Picked = value
	case model.FlagPack:
		rec.Packed = value
	case model.FlagReady:
		rec.Ready = value
	default:
		return errs.ErrValidation
	}
	r.s.st.records[k] = rec
	r.s.st.writes++
	return nil
}

func (r packingRepo) Categories(_ context.Context, userID, tripID uuid.UUID) ([]model.TripCategory, error) {
	defer r.s.rlock()()
	st := r.s.st
	byCat := map[uuid.UUID][]model.TripItem{}
	for k, rec := range st.records {
		if k.trip != tripID || rec.UserID != userID {
			continue
		}
		it, ok := st.items[k.item]
		if !ok || it.UserID != userID {
			continue
		}
		byCat[it.CategoryID] = append(byCat[it.CategoryID], model.TripItem{
			Item: it, Picked: rec.Picked, Packed: rec.Packed, Ready: rec.Ready, New: rec.New,
		})
	}

	out := []model.TripCategory{}
	for _, c := range st.categories {
		if c.UserID != userID {
			continue
		}
		items := byCat[c.ID]
		if items == nil {
			items = []model.TripItem{}
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Item.Name < items[j].Item.Name })
		out = append(out, model.TripCategory{Category: c, Items: items})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category.Name != out[j].Category.Name {
			return out[i].Category.Name < out[j].Category.Name
		}
		return out[i].Category.ID.String() < out[j].Category.ID.String()
	})
	return out, nil
}

func (r packingRepo) AcknowledgeNew(_ context.Context, userID, tripID uuid.UUID) (int64, error) {
	defer r.s.lock()()
	var n int64
	for k, rec := range r.s.st.records {
		if k.trip != tripID || rec.UserID != userID || !rec.New {
			continue
		}
		rec.New = false
		r.s.st.records[k] = rec
		r.s.st.writes++
		n++
	}
	return n, nil
}

type catalogRepo struct{ s *Store }

func (r catalogRepo) ListCategories(_ context.Context, userID uuid.UUID) ([]model.Category, error) {
	defer r.s.rlock()()
	out := []model.Category{}
	for _, c := range r.s.st.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r catalogRepo) ListItems(_ context.Context, userID uuid.UUID) ([]model.InventoryItem, error) {
	defer r.s.rlock()()
	out := []model.InventoryItem{}
	for _, it := range r.s.st.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r catalogRepo) GetItem(_ context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error) {
	defer r.s.rlock()()
	it, ok := r.s.st.items[itemID]
	if !ok || it.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return &it, nil
}
