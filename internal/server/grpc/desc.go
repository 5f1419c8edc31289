package grpcserver

import (
	"context"

	"google.golang.org/grpc"

	"github.com/and161185/packtrip/internal/api"
)

// PackingServer is the server side of packtrip.v1.Packing.
type PackingServer interface {
	CreateTrip(context.Context, *api.CreateTripRequest) (*api.Trip, error)
	GetTrip(context.Context, *api.TripRef) (*api.Trip, error)
	ListTrips(context.Context, *api.Empty) (*api.ListTripsResponse, error)
	SetTripState(context.Context, *api.SetTripStateRequest) (*api.SetTripStateResponse, error)
	AdvanceTrip(context.Context, *api.AdvanceTripRequest) (*api.AdvanceTripResponse, error)
	Reconcile(context.Context, *api.TripRef) (*api.ReconcileResponse, error)
	TripView(context.Context, *api.TripRef) (*api.TripView, error)
	SetFlag(context.Context, *api.SetFlagRequest) (*api.Empty, error)
	FindItem(context.Context, *api.ItemRef) (*api.TripItem, error)
	TotalPickedWeight(context.Context, *api.TripRef) (*api.WeightResponse, error)
	AcknowledgeNew(context.Context, *api.TripRef) (*api.AcknowledgeNewResponse, error)
	ListItems(context.Context, *api.Empty) (*api.ListItemsResponse, error)
}

func unary[Req, Resp any](name string, call func(PackingServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, ic grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			h := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PackingServer), ctx, req.(*Req))
			}
			if ic == nil {
				return h(ctx, in)
			}
			return ic(ctx, in, &grpc.UnaryServerInfo{Server: srv, FullMethod: api.FullMethod(name)}, h)
		},
	}
}

// ServiceDesc describes packtrip.v1.Packing. Messages use the JSON codec.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*PackingServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(api.MethodCreateTrip, PackingServer.CreateTrip),
		unary(api.MethodGetTrip, PackingServer.GetTrip),
		unary(api.MethodListTrips, PackingServer.ListTrips),
		unary(api.MethodSetTripState, PackingServer.SetTripState),
		unary(api.MethodAdvanceTrip, PackingServer.AdvanceTrip),
		unary(api.MethodReconcile, PackingServer.Reconcile),
		unary(api.MethodTripView, PackingServer.TripView),
		unary(api.MethodSetFlag, PackingServer.SetFlag),
		unary(api.MethodFindItem, PackingServer.FindItem),
		unary(api.MethodTotalPickedWeight, PackingServer.TotalPickedWeight),
		unary(api.MethodAcknowledgeNew, PackingServer.AcknowledgeNew),
		unary(api.MethodListItems, PackingServer.ListItems),
	},
	Metadata: "packtrip/v1/packing",
}

// Register attaches srv to gs.
func Register(gs grpc.ServiceRegistrar, srv PackingServer) {
	gs.RegisterService(&ServiceDesc, srv)
}
