// Package grpcserver exposes the packing engine over gRPC.
package grpcserver

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/and161185/packtrip/internal/api"
	"github.com/and161185/packtrip/internal/convert"
	"github.com/and161185/packtrip/internal/errs"
	"github.com/and161185/packtrip/internal/model"
	"github.com/and161185/packtrip/internal/service"
)

// Server wires services into gRPC handlers.
type Server struct {
	trips   service.TripService
	packing service.PackingService
	catalog service.CatalogService
	log     *zap.Logger
}

var _ PackingServer = (*Server)(nil)

// New constructs a gRPC server with injected services.
func New(trips service.TripService, packing service.PackingService, catalog service.CatalogService, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{trips: trips, packing: packing, catalog: catalog, log: log}
}

// toStatus maps domain errors to gRPC codes. Unclassified errors are logged and
// reported as Internal without details.
func (s *Server) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	case errors.Is(err, errs.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrInvalidProgress):
		return status.Errorf(codes.FailedPrecondition, "%s: %v", op, err)
	case errors.Is(err, errs.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "no auth")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, op)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, op)
	}
	s.log.Error("request failed", zap.String("op", op), zap.Error(err))
	return status.Errorf(codes.Internal, "%s: internal error", op)
}

func caller(ctx context.Context) (uuid.UUID, error) {
	id, ok := UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "no auth")
	}
	return id, nil
}

func tripRef(ctx context.Context, tripID string) (uuid.UUID, uuid.UUID, error) {
	userID, err := caller(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := convert.ParseID("trip_id", tripID)
	if err != nil {
		return uuid.Nil, uuid.Nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return userID, id, nil
}

func itemRef(ctx context.Context, tripID, itemID string) (uuid.UUID, uuid.UUID, uuid.UUID, error) {
	userID, tid, err := tripRef(ctx, tripID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	iid, err := convert.ParseID("item_id", itemID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return userID, tid, iid, nil
}

// --- Trips ---

// CreateTrip stores a trip in state init with a record per inventory item.
func (s *Server) CreateTrip(ctx context.Context, req *api.CreateTripRequest) (*api.Trip, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	in, err := convert.FromAPINewTrip(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad trip: %v", err)
	}
	t, err := s.trips.Create(ctx, userID, in)
	if err != nil {
		return nil, s.toStatus("create trip", err)
	}
	return convert.ToAPITrip(*t), nil
}

// GetTrip returns trip metadata without packing rows.
func (s *Server) GetTrip(ctx context.Context, req *api.TripRef) (*api.Trip, error) {
	userID, tripID, err := tripRef(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	t, err := s.trips.Get(ctx, userID, tripID)
	if err != nil {
		return nil, s.toStatus("get trip", err)
	}
	return convert.ToAPITrip(*t), nil
}

// ListTrips returns the caller's trips, newest start date first.
func (s *Server) ListTrips(ctx context.Context, _ *api.Empty) (*api.ListTripsResponse, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	ts, err := s.trips.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus("list trips", err)
	}
	return &api.ListTripsResponse{Trips: convert.ToAPITrips(ts)}, nil
}

// SetTripState writes a state by name.
func (s *Server) SetTripState(ctx context.Context, req *api.SetTripStateRequest) (*api.SetTripStateResponse, error) {
	userID, tripID, err := tripRef(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	st, err := model.ParseTripState(req.State)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	ok, err := s.trips.SetState(ctx, userID, tripID, st)
	if err != nil {
		return nil, s.toStatus("set state", err)
	}
	return &api.SetTripStateResponse{Updated: ok}, nil
}

// AdvanceTrip moves one step along the lifecycle.
func (s *Server) AdvanceTrip(ctx context.Context, req *api.AdvanceTripRequest) (*api.AdvanceTripResponse, error) {
	userID, tripID, err := tripRef(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	dir, err := convert.FromAPIDirection(req.Direction)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	st, err := s.trips.Advance(ctx, userID, tripID, dir)
	if err != nil {
		return nil, s.toStatus("advance", err)
	}
	return &api.AdvanceTripResponse{State: st.String()}, nil
}

// --- Packing ---

// Reconcile fills in missing packing records.
func (s *Server) Reconcile(ctx context.Context, req *api.TripRef) (*api.ReconcileResponse, error) {
	userID, tripID, err := tripRef(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	n, err := s.packing.Reconcile(ctx, userID, tripID)
	if err != nil {
		return nil, s.toStatus("reconcile", err)
	}
	return &api.ReconcileResponse{Inserted: n}, nil
}

// TripView reconciles and returns the full detail view.
func (s *Server) TripView(ctx context.Context, req *api.TripRef) (*api.TripView, error) {
	userID, tripID, err := tripRef(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	v, err := s.packing.TripView(ctx, userID, tripID)
	if err != nil {
		return nil, s.toStatus("trip view", err)
	}
	return convert.ToAPITripView(*v), nil
}

// SetFlag toggles pick, pack or ready.
func (s *Server) SetFlag(ctx context.Context, req *api.SetFlagRequest) (*api.Empty, error) {
	userID, tripID, itemID, err := itemRef(ctx, req.TripID, req.ItemID)
	if err != nil {
		return nil, err
	}
	f, err := model.ParseFlag(req.Flag)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.packing.SetFlag(ctx, userID, tripID, itemID, f, req.Value); err != nil {
		return nil, s.toStatus("set flag", err)
	}
	return &api.Empty{}, nil
}

// FindItem returns one joined packing row.
func (s *Server) FindItem(ctx context.Context, req *api.ItemRef) (*api.TripItem, error) {
	userID, tripID, itemID, err := itemRef(ctx, req.TripID, req.ItemID)
	if err != nil {
		return nil, err
	}
	ti, err := s.packing.FindItem(ctx, userID, tripID, itemID)
	if err != nil {
		return nil, s.toStatus("find item", err)
	}
	return convert.ToAPITripItem(*ti), nil
}

// TotalPickedWeight returns picked grams over the reconciled trip.
func (s *Server) TotalPickedWeight(ctx context.Context, req *api.TripRef) (*api.WeightResponse, error) {
	userID, tripID, err := tripRef(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	w, err := s.packing.TotalPickedWeight(ctx, userID, tripID)
	if err != nil {
		return nil, s.toStatus("picked weight", err)
	}
	return &api.WeightResponse{Grams: w}, nil
}

// AcknowledgeNew clears the new marker on the trip's records.
func (s *Server) AcknowledgeNew(ctx context.Context, req *api.TripRef) (*api.AcknowledgeNewResponse, error) {
	userID, tripID, err := tripRef(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	n, err := s.packing.AcknowledgeNew(ctx, userID, tripID)
	if err != nil {
		return nil, s.toStatus("acknowledge new", err)
	}
	return &api.AcknowledgeNewResponse{Cleared: n}, nil
}

// --- Catalog ---

// ListItems returns the caller's inventory.
func (s *Server) ListItems(ctx context.Context, _ *api.Empty) (*api.ListItemsResponse, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.catalog.ListItems(ctx, userID)
	if err != nil {
		return nil, s.toStatus("list items", err)
	}
	return &api.ListItemsResponse{Items: convert.ToAPIItems(items)}, nil
}
