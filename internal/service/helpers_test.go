package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/packtrip/internal/model"
	"github.com/and161185/packtrip/internal/repository"
	"github.com/and161185/packtrip/internal/repository/memory"
)

type catalogFixture struct {
	store *memory.Store
	user  uuid.UUID
	cats  map[string]model.Category
}

func newFixture(t *testing.T, categories ...string) *catalogFixture {
	t.Helper()
	f := &catalogFixture{store: memory.New(), user: uuid.Must(uuid.NewV4()), cats: map[string]model.Category{}}
	for _, name := range categories {
		c := model.Category{ID: uuid.Must(uuid.NewV4()), UserID: f.user, Name: name}
		f.store.PutCategory(c)
		f.cats[name] = c
	}
	return f
}

func (f *catalogFixture) addItem(t *testing.T, category, name string, weight int64) model.InventoryItem {
	t.Helper()
	c, ok := f.cats[category]
	if !ok {
		t.Fatalf("unknown category %q", category)
	}
	it := model.InventoryItem{ID: uuid.Must(uuid.NewV4()), UserID: f.user, Name: name, Weight: weight, CategoryID: c.ID}
	f.store.PutItem(it)
	return it
}

// recorder counts calls for assertions.
type recorder struct {
	mu         sync.Mutex
	reconciled int
	flags      []model.Flag
	states     []model.TripState
}

func (r *recorder) RecordsReconciled(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reconciled += n
}

func (r *recorder) FlagSet(f model.Flag, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags = append(r.flags, f)
}

func (r *recorder) StateChanged(s model.TripState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

// failingStore wraps a real store and breaks InsertRecord after okInserts calls.
type failingStore struct {
	repository.Store
	okInserts int
	calls     int
}

func (f *failingStore) Packing() repository.PackingRepository {
	return &failingPacking{PackingRepository: f.Store.Packing(), parent: f}
}

type failingPacking struct {
	repository.PackingRepository
	parent *failingStore
}

var errInsert = errors.New("insert-fail")

func (p *failingPacking) InsertRecord(ctx context.Context, rec model.PackingRecord) (bool, error) {
	p.parent.calls++
	if p.parent.calls > p.parent.okInserts {
		return false, errInsert
	}
	return p.PackingRepository.InsertRecord(ctx, rec)
}
