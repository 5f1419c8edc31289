package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/packtrip/internal/errs"
	"github.com/and161185/packtrip/internal/model"
)

func createTrip(t *testing.T, f *catalogFixture) *model.Trip {
	t.Helper()
	trips := NewTripService(f.store.Trips(), Policy{}, zaptest.NewLogger(t), nil)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	tr, err := trips.Create(context.Background(), f.user, model.NewTrip{
		Name: "T1", DateStart: start, DateEnd: start.AddDate(0, 0, 3),
	})
	require.NoError(t, err)
	return tr
}

func TestReconcile_Completeness(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "shelter", "kitchen", "clothes")
	tr := createTrip(t, f)

	var all []model.InventoryItem
	for i, cat := range []string{"shelter", "kitchen", "clothes", "kitchen", "shelter"} {
		all = append(all, f.addItem(t, cat, cat+string(rune('a'+i)), int64(10*(i+1))))
	}
	// another owner's gear never leaks into the trip
	foreign := model.InventoryItem{ID: uuid.Must(uuid.NewV4()), UserID: uuid.Must(uuid.NewV4()), Name: "x"}
	f.store.PutItem(foreign)

	svc := NewPackingService(f.store, Policy{}, zaptest.NewLogger(t), nil)
	n, err := svc.Reconcile(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Equal(t, len(all), n)

	for _, it := range all {
		_, ok := f.store.Record(tr.ID, it.ID)
		require.True(t, ok, "record for %s", it.Name)
	}
	_, ok := f.store.Record(tr.ID, foreign.ID)
	require.False(t, ok)

	missing, err := f.store.Packing().MissingItemIDs(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestReconcile_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "shelter")
	tr := createTrip(t, f)
	f.addItem(t, "shelter", "tent", 1800)
	f.addItem(t, "shelter", "pegs", 120)

	rec := &recorder{}
	svc := NewPackingService(f.store, Policy{}, zaptest.NewLogger(t), rec)
	n, err := svc.Reconcile(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	writes := f.store.Writes()
	n, err = svc.Reconcile(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, writes, f.store.Writes(), "second run must not write")
	require.Equal(t, 2, rec.reconciled)
}

func TestReconcile_NotFound(t *testing.T) {
	f := newFixture(t, "shelter")
	f.addItem(t, "shelter", "tent", 1800)
	svc := NewPackingService(f.store, Policy{}, nil, nil)

	_, err := svc.Reconcile(context.Background(), f.user, uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, errs.ErrNotFound)

	// trip of another owner
	tr := createTrip(t, f)
	_, err = svc.Reconcile(context.Background(), uuid.Must(uuid.NewV4()), tr.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestReconcile_Validation(t *testing.T) {
	svc := NewPackingService(newFixture(t).store, Policy{}, nil, nil)
	_, err := svc.Reconcile(context.Background(), uuid.Nil, uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.TripView(context.Background(), uuid.Must(uuid.NewV4()), uuid.Nil)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestReconcile_NewFlagFollowsState(t *testing.T) {
	for _, st := range model.AllStates() {
		t.Run(st.String(), func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, "misc")
			tr := createTrip(t, f)
			_, err := f.store.Trips().SetState(ctx, f.user, tr.ID, st)
			require.NoError(t, err)
			it := f.addItem(t, "misc", "late", 5)

			svc := NewPackingService(f.store, Policy{}, nil, nil)
			_, err = svc.Reconcile(ctx, f.user, tr.ID)
			require.NoError(t, err)

			rec, ok := f.store.Record(tr.ID, it.ID)
			require.True(t, ok)
			require.Equal(t, st != model.StateInit, rec.New)
			require.False(t, rec.Picked || rec.Packed || rec.Ready)
		})
	}
}

func TestReconcile_PartialProgressSurvivesFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "misc")
	tr := createTrip(t, f)
	a := f.addItem(t, "misc", "a", 1)
	b := f.addItem(t, "misc", "b", 2)

	fs := &failingStore{Store: f.store, okInserts: 1}
	svc := NewPackingService(fs, Policy{}, zaptest.NewLogger(t), nil)
	n, err := svc.Reconcile(ctx, f.user, tr.ID)
	require.ErrorIs(t, err, errInsert)
	require.Equal(t, 1, n)

	_, okA := f.store.Record(tr.ID, a.ID)
	_, okB := f.store.Record(tr.ID, b.ID)
	require.True(t, okA != okB, "exactly one record was kept")
}

func TestLoadCategories_KeepsEmptyCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "empty", "full")
	f.addItem(t, "full", "stove", 300)
	tr := createTrip(t, f)

	svc := NewPackingService(f.store, Policy{}, nil, nil)
	cs, err := svc.LoadCategories(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	require.Equal(t, "empty", cs[0].Category.Name)
	require.NotNil(t, cs[0].Items)
	require.Len(t, cs[0].Items, 0)
	require.Len(t, cs[1].Items, 1)
}

func TestSetFlag_PermissiveByDefault(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "misc")
	it := f.addItem(t, "misc", "knife", 90)
	tr := createTrip(t, f)

	rec := &recorder{}
	svc := NewPackingService(f.store, Policy{}, nil, rec)
	// packing an unpicked item is accepted
	require.NoError(t, svc.SetFlag(ctx, f.user, tr.ID, it.ID, model.FlagPack, true))
	require.NoError(t, svc.SetFlag(ctx, f.user, tr.ID, it.ID, model.FlagReady, true))

	got, err := svc.FindItem(ctx, f.user, tr.ID, it.ID)
	require.NoError(t, err)
	require.False(t, got.Picked)
	require.True(t, got.Packed)
	require.True(t, got.Ready)
	require.Equal(t, []model.Flag{model.FlagPack, model.FlagReady}, rec.flags)
}

func TestSetFlag_Strict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "misc")
	it := f.addItem(t, "misc", "knife", 90)
	tr := createTrip(t, f)

	svc := NewPackingService(f.store, Policy{StrictFlags: true}, nil, nil)
	require.ErrorIs(t, svc.SetFlag(ctx, f.user, tr.ID, it.ID, model.FlagPack, true), errs.ErrInvalidProgress)
	require.NoError(t, svc.SetFlag(ctx, f.user, tr.ID, it.ID, model.FlagPick, true))
	require.NoError(t, svc.SetFlag(ctx, f.user, tr.ID, it.ID, model.FlagPack, true))
	require.ErrorIs(t, svc.SetFlag(ctx, f.user, tr.ID, it.ID, model.FlagPick, false), errs.ErrInvalidProgress)
	require.NoError(t, svc.SetFlag(ctx, f.user, tr.ID, it.ID, model.FlagPack, false))
	require.NoError(t, svc.SetFlag(ctx, f.user, tr.ID, it.ID, model.FlagPick, false))

	err := svc.SetFlag(ctx, f.user, tr.ID, uuid.Must(uuid.NewV4()), model.FlagPick, true)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSetFlag_NotFoundAndValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "misc")
	it := f.addItem(t, "misc", "knife", 90)
	tr := createTrip(t, f)
	svc := NewPackingService(f.store, Policy{}, nil, nil)

	require.ErrorIs(t, svc.SetFlag(ctx, f.user, uuid.Must(uuid.NewV4()), it.ID, model.FlagPick, true), errs.ErrNotFound)
	require.ErrorIs(t, svc.SetFlag(ctx, uuid.Must(uuid.NewV4()), tr.ID, it.ID, model.FlagPick, true), errs.ErrNotFound)
	require.ErrorIs(t, svc.SetFlag(ctx, f.user, tr.ID, it.ID, model.Flag(5), true), errs.ErrValidation)
	require.ErrorIs(t, svc.SetFlag(ctx, f.user, tr.ID, uuid.Nil, model.FlagPick, true), errs.ErrValidation)
}

func TestTotalPickedWeight_MatchesItemSum(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "a", "b", "c")
	tr := createTrip(t, f)
	svc := NewPackingService(f.store, Policy{}, nil, nil)

	var want int64
	for i := 0; i < 9; i++ {
		cat := []string{"a", "b", "c"}[i%3]
		it := f.addItem(t, cat, cat+string(rune('0'+i)), int64(17*(i+1)))
		_, err := svc.Reconcile(ctx, f.user, tr.ID)
		require.NoError(t, err)
		if i%2 == 0 {
			require.NoError(t, svc.SetFlag(ctx, f.user, tr.ID, it.ID, model.FlagPick, true))
			want += it.Weight
		}
	}
	got, err := svc.TotalPickedWeight(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = svc.TotalPickedWeight(ctx, f.user, uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTripView_ReconcilesFirst(t *testing.T) {
	for _, snapshot := range []bool{false, true} {
		ctx := context.Background()
		f := newFixture(t, "misc")
		tr := createTrip(t, f)
		f.addItem(t, "misc", "late", 40)

		svc := NewPackingService(f.store, Policy{SnapshotViews: snapshot}, nil, nil)
		v, err := svc.TripView(ctx, f.user, tr.ID)
		require.NoError(t, err)
		require.Equal(t, tr.ID, v.Trip.ID)
		require.Len(t, v.Categories, 1)
		require.Len(t, v.Categories[0].Items, 1)
		require.Equal(t, int64(40), v.Progress.TotalWeight)
		require.Equal(t, 1, v.Progress.Items)
	}
}

func TestAcknowledgeNew(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "misc")
	tr := createTrip(t, f)
	trips := NewTripService(f.store.Trips(), Policy{}, nil, nil)
	_, err := trips.Advance(ctx, f.user, tr.ID, model.Forward)
	require.NoError(t, err)
	it := f.addItem(t, "misc", "late", 40)

	svc := NewPackingService(f.store, Policy{}, zaptest.NewLogger(t), nil)
	v, err := svc.TripView(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Equal(t, 1, v.Progress.NewItems)

	n, err := svc.AcknowledgeNew(ctx, f.user, tr.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	rec, _ := f.store.Record(tr.ID, it.ID)
	require.False(t, rec.New)

	_, err = svc.AcknowledgeNew(ctx, f.user, uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, errs.ErrNotFound)
}
