package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/packtrip/internal/errs"
	"github.com/and161185/packtrip/internal/model"
	"github.com/and161185/packtrip/internal/repository"
)

// TripService defines trip creation and lifecycle operations.
type TripService interface {
	// Create stores a new trip in state Init with records for the whole inventory.
	Create(ctx context.Context, userID uuid.UUID, in model.NewTrip) (*model.Trip, error)
	// Get returns one trip.
	Get(ctx context.Context, userID, tripID uuid.UUID) (*model.Trip, error)
	// List returns the owner's trips.
	List(ctx context.Context, userID uuid.UUID) ([]model.Trip, error)
	// SetState writes any state; see Policy.StrictTransitions.
	SetState(ctx context.Context, userID, tripID uuid.UUID, s model.TripState) (bool, error)
	// Advance moves the trip one step forward or backward.
	Advance(ctx context.Context, userID, tripID uuid.UUID, dir model.Direction) (model.TripState, error)
}

type TripServiceImpl struct {
	trips    repository.TripRepository
	policy   Policy
	validate *validator.Validate
	log      *zap.Logger
	rec      Recorder
}

// NewTripService constructs TripService.
func NewTripService(trips repository.TripRepository, policy Policy, log *zap.Logger, rec Recorder) *TripServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &TripServiceImpl{
		trips:    trips,
		policy:   policy,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		rec:      rec,
	}
}

// Create validates input and delegates the transactional insert to the repository.
func (s *TripServiceImpl) Create(ctx context.Context, userID uuid.UUID, in model.NewTrip) (*model.Trip, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	if in.TempMin != nil && in.TempMax != nil && *in.TempMin > *in.TempMax {
		return nil, fmt.Errorf("%w: temp_min above temp_max", errs.ErrValidation)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	t := &model.Trip{
		ID:        id,
		UserID:    userID,
		Name:      in.Name,
		DateStart: in.DateStart,
		DateEnd:   in.DateEnd,
		State:     model.StateInit,
		Location:  in.Location,
		TempMin:   in.TempMin,
		TempMax:   in.TempMax,
		Comment:   in.Comment,
	}
	if err := s.trips.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info("trip created", zap.Stringer("trip", t.ID), zap.Stringer("user", userID))
	return t, nil
}

// Get fetches a single trip.
func (s *TripServiceImpl) Get(ctx context.Context, userID, tripID uuid.UUID) (*model.Trip, error) {
	if userID == uuid.Nil || tripID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID/tripID", errs.ErrValidation)
	}
	return s.trips.Get(ctx, userID, tripID)
}

// List returns all trips of the owner.
func (s *TripServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.Trip, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.trips.List(ctx, userID)
}

// SetState overwrites the lifecycle state. Without StrictTransitions any state
// may be written regardless of the current one.
func (s *TripServiceImpl) SetState(ctx context.Context, userID, tripID uuid.UUID, st model.TripState) (bool, error) {
	if userID == uuid.Nil || tripID == uuid.Nil {
		return false, fmt.Errorf("%w: empty userID/tripID", errs.ErrValidation)
	}
	if !st.Valid() {
		return false, fmt.Errorf("%w: %s", errs.ErrValidation, st)
	}
	if s.policy.StrictTransitions {
		cur, err := s.trips.Get(ctx, userID, tripID)
		if err != nil {
			return false, err
		}
		if !cur.State.Adjacent(st) {
			return false, fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, cur.State, st)
		}
	}
	return s.write(ctx, userID, tripID, st)
}

// Advance reads the current state and writes its neighbour in the given direction.
func (s *TripServiceImpl) Advance(ctx context.Context, userID, tripID uuid.UUID, dir model.Direction) (model.TripState, error) {
	cur, err := s.Get(ctx, userID, tripID)
	if err != nil {
		return model.StateInit, err
	}
	var (
		to model.TripState
		ok bool
	)
	switch dir {
	case model.Forward:
		to, ok = model.Next(cur.State)
	case model.Backward:
		to, ok = model.Prev(cur.State)
	default:
		return cur.State, fmt.Errorf("%w: direction %d", errs.ErrValidation, dir)
	}
	if !ok {
		return cur.State, fmt.Errorf("%w: no step from %s", errs.ErrInvalidTransition, cur.State)
	}
	if _, err := s.write(ctx, userID, tripID, to); err != nil {
		return cur.State, err
	}
	return to, nil
}

func (s *TripServiceImpl) write(ctx context.Context, userID, tripID uuid.UUID, st model.TripState) (bool, error) {
	ok, err := s.trips.SetState(ctx, userID, tripID, st)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, errs.ErrNotFound
	}
	s.rec.StateChanged(st)
	s.log.Info("trip state changed", zap.Stringer("trip", tripID), zap.Stringer("state", st))
	return true, nil
}
