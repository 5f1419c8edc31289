package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/packtrip/internal/errs"
	"github.com/and161185/packtrip/internal/model"
	"github.com/and161185/packtrip/internal/repository"
)

// PackingService keeps packing records complete and exposes progress.
type PackingService interface {
	// Reconcile adds a record for every owner item the trip has none for
	// and returns how many were written.
	Reconcile(ctx context.Context, userID, tripID uuid.UUID) (int, error)
	// LoadCategories returns every owner category with the trip's records.
	LoadCategories(ctx context.Context, userID, tripID uuid.UUID) ([]model.TripCategory, error)
	// TripView reconciles, then loads the trip, categories and progress.
	TripView(ctx context.Context, userID, tripID uuid.UUID) (*model.TripView, error)
	// FindItem returns one joined record.
	FindItem(ctx context.Context, userID, tripID, itemID uuid.UUID) (*model.TripItem, error)
	// SetFlag toggles pick, pack or ready on one record.
	SetFlag(ctx context.Context, userID, tripID, itemID uuid.UUID, f model.Flag, value bool) error
	// TotalPickedWeight sums the weight of picked items over the reconciled trip.
	TotalPickedWeight(ctx context.Context, userID, tripID uuid.UUID) (int64, error)
	// AcknowledgeNew clears the new marker on all records of the trip.
	AcknowledgeNew(ctx context.Context, userID, tripID uuid.UUID) (int64, error)
}

type PackingServiceImpl struct {
	store  repository.Store
	policy Policy
	log    *zap.Logger
	rec    Recorder
}

// NewPackingService constructs PackingService over any repository.Store backend.
func NewPackingService(store repository.Store, policy Policy, log *zap.Logger, rec Recorder) *PackingServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &PackingServiceImpl{store: store, policy: policy, log: log, rec: rec}
}

func validIDs(ids ...uuid.UUID) error {
	for _, id := range ids {
		if id == uuid.Nil {
			return fmt.Errorf("%w: empty id", errs.ErrValidation)
		}
	}
	return nil
}

// Reconcile runs the reconciliation against the pool directly. Records inserted
// before a failure are kept.
func (s *PackingServiceImpl) Reconcile(ctx context.Context, userID, tripID uuid.UUID) (int, error) {
	if err := validIDs(userID, tripID); err != nil {
		return 0, err
	}
	return s.reconcile(ctx, s.store, userID, tripID)
}

func (s *PackingServiceImpl) reconcile(ctx context.Context, st repository.Store, userID, tripID uuid.UUID) (int, error) {
	repo := st.Packing()
	state, err := repo.TripState(ctx, userID, tripID)
	if err != nil {
		return 0, err
	}
	missing, err := repo.MissingItemIDs(ctx, userID, tripID)
	if err != nil {
		return 0, err
	}
	if len(missing) == 0 {
		return 0, nil
	}

	isNew := state.Underway()
	inserted := 0
	for _, itemID := range missing {
		ok, err := repo.InsertRecord(ctx, model.PackingRecord{
			TripID: tripID,
			ItemID: itemID,
			UserID: userID,
			New:    isNew,
		})
		if err != nil {
			s.log.Warn("reconcile interrupted",
				zap.Stringer("trip", tripID), zap.Int("inserted", inserted), zap.Error(err))
			s.rec.RecordsReconciled(inserted)
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	s.rec.RecordsReconciled(inserted)
	s.log.Info("trip reconciled",
		zap.Stringer("trip", tripID),
		zap.Stringer("state", state),
		zap.Int("inserted", inserted),
		zap.Bool("new", isNew),
	)
	return inserted, nil
}

// LoadCategories reads the category join as is, without reconciling.
func (s *PackingServiceImpl) LoadCategories(ctx context.Context, userID, tripID uuid.UUID) ([]model.TripCategory, error) {
	if err := validIDs(userID, tripID); err != nil {
		return nil, err
	}
	return s.store.Packing().Categories(ctx, userID, tripID)
}

// TripView reconciles and reads the trip detail. With Policy.SnapshotViews both
// steps share one transaction; otherwise they are separate round trips.
func (s *PackingServiceImpl) TripView(ctx context.Context, userID, tripID uuid.UUID) (*model.TripView, error) {
	if err := validIDs(userID, tripID); err != nil {
		return nil, err
	}
	if !s.policy.SnapshotViews {
		return s.view(ctx, s.store, userID, tripID)
	}
	var v *model.TripView
	err := s.store.InSnapshot(ctx, func(tx repository.Store) error {
		var err error
		v, err = s.view(ctx, tx, userID, tripID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *PackingServiceImpl) view(ctx context.Context, st repository.Store, userID, tripID uuid.UUID) (*model.TripView, error) {
	if _, err := s.reconcile(ctx, st, userID, tripID); err != nil {
		return nil, err
	}
	t, err := st.Trips().Get(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	cs, err := st.Packing().Categories(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	return &model.TripView{Trip: *t, Categories: cs, Progress: model.Summarize(cs)}, nil
}

// FindItem fetches one joined record.
func (s *PackingServiceImpl) FindItem(ctx context.Context, userID, tripID, itemID uuid.UUID) (*model.TripItem, error) {
	if err := validIDs(userID, tripID, itemID); err != nil {
		return nil, err
	}
	return s.store.Packing().Find(ctx, userID, tripID, itemID)
}

// SetFlag writes one flag column. Ordering between pick, pack and ready is
// only checked under Policy.StrictFlags.
func (s *PackingServiceImpl) SetFlag(ctx context.Context, userID, tripID, itemID uuid.UUID, f model.Flag, value bool) error {
	if err := validIDs(userID, tripID, itemID); err != nil {
		return err
	}
	if _, ok := f.Column(); !ok {
		return fmt.Errorf("%w: flag %s", errs.ErrValidation, f)
	}
	repo := s.store.Packing()
	if s.policy.StrictFlags {
		cur, err := repo.Find(ctx, userID, tripID, itemID)
		if err != nil {
			return err
		}
		if !model.CheckFlag(cur.Record(tripID), f, value) {
			return fmt.Errorf("%w: %s=%t while %s", errs.ErrInvalidProgress, f, value, cur.Record(tripID).Progression())
		}
	}
	if err := repo.SetFlag(ctx, userID, tripID, itemID, f, value); err != nil {
		return err
	}
	s.rec.FlagSet(f, value)
	return nil
}

// TotalPickedWeight reconciles the trip and sums picked weight over all categories.
func (s *PackingServiceImpl) TotalPickedWeight(ctx context.Context, userID, tripID uuid.UUID) (int64, error) {
	v, err := s.TripView(ctx, userID, tripID)
	if err != nil {
		return 0, err
	}
	return model.TripPickedWeight(v.Categories), nil
}

// AcknowledgeNew clears the new marker; errs.ErrNotFound if the trip is absent.
func (s *PackingServiceImpl) AcknowledgeNew(ctx context.Context, userID, tripID uuid.UUID) (int64, error) {
	if err := validIDs(userID, tripID); err != nil {
		return 0, err
	}
	repo := s.store.Packing()
	if _, err := repo.TripState(ctx, userID, tripID); err != nil {
		return 0, err
	}
	n, err := repo.AcknowledgeNew(ctx, userID, tripID)
	if err != nil {
		return 0, err
	}
	s.log.Info("new items acknowledged", zap.Stringer("trip", tripID), zap.Int64("cleared", n))
	return n, nil
}
