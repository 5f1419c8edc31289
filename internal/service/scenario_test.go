package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/packtrip/internal/model"
)

func TestPackingScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "gear")
	a := f.addItem(t, "gear", "A", 100)
	b := f.addItem(t, "gear", "B", 200)

	log := zaptest.NewLogger(t)
	trips := NewTripService(f.store.Trips(), Policy{}, log, nil)
	packing := NewPackingService(f.store, Policy{}, log, nil)

	tr := createTrip(t, f)
	for _, it := range []model.InventoryItem{a, b} {
		rec, ok := f.store.Record(tr.ID, it.ID)
		require.True(t, ok)
		require.False(t, rec.New)
		require.Equal(t, model.Unselected, rec.Progression())
	}

	c := f.addItem(t, "gear", "C", 50)
	v, err := packing.TripView(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Len(t, v.Categories[0].Items, 3)
	rec, ok := f.store.Record(tr.ID, c.ID)
	require.True(t, ok)
	require.False(t, rec.New, "items added while in init are not new")

	require.NoError(t, packing.SetFlag(ctx, f.user, tr.ID, a.ID, model.FlagPick, true))
	require.NoError(t, packing.SetFlag(ctx, f.user, tr.ID, b.ID, model.FlagPick, true))
	w, err := packing.TotalPickedWeight(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Equal(t, int64(300), w)

	st, err := trips.Advance(ctx, f.user, tr.ID, model.Forward)
	require.NoError(t, err)
	require.Equal(t, model.StatePlanning, st)

	d := f.addItem(t, "gear", "D", 10)
	n, err := packing.Reconcile(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	rec, ok = f.store.Record(tr.ID, d.ID)
	require.True(t, ok)
	require.True(t, rec.New)

	// an item removed from the inventory drops out of the view but keeps its record
	f.store.DeleteItem(b.ID)
	v, err = packing.TripView(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Len(t, v.Categories[0].Items, 3)
	require.Equal(t, int64(100), model.TripPickedWeight(v.Categories))
	_, ok = f.store.Record(tr.ID, b.ID)
	require.True(t, ok)
}
