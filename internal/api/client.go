package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "packtrip.v1.Packing"

// Method names of the Packing service.
const (
	MethodCreateTrip        = "CreateTrip"
	MethodGetTrip           = "GetTrip"
	MethodListTrips         = "ListTrips"
	MethodSetTripState      = "SetTripState"
	MethodAdvanceTrip       = "AdvanceTrip"
	MethodReconcile         = "Reconcile"
	MethodTripView          = "TripView"
	MethodSetFlag           = "SetFlag"
	MethodFindItem          = "FindItem"
	MethodTotalPickedWeight = "TotalPickedWeight"
	MethodAcknowledgeNew    = "AcknowledgeNew"
	MethodListItems         = "ListItems"
)

// FullMethod returns "/packtrip.v1.Packing/<method>".
func FullMethod(method string) string { return "/" + ServiceName + "/" + method }

// Client is a typed client for the Packing service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a connection. Calls always use the JSON codec.
func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTrip(ctx context.Context, in *CreateTripRequest, opts ...grpc.CallOption) (*Trip, error) {
	return invoke[Trip](ctx, c, MethodCreateTrip, in, opts)
}

func (c *Client) GetTrip(ctx context.Context, in *TripRef, opts ...grpc.CallOption) (*Trip, error) {
	return invoke[Trip](ctx, c, MethodGetTrip, in, opts)
}

func (c *Client) ListTrips(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListTripsResponse, error) {
	return invoke[ListTripsResponse](ctx, c, MethodListTrips, in, opts)
}

func (c *Client) SetTripState(ctx context.Context, in *SetTripStateRequest, opts ...grpc.CallOption) (*SetTripStateResponse, error) {
	return invoke[SetTripStateResponse](ctx, c, MethodSetTripState, in, opts)
}

func (c *Client) AdvanceTrip(ctx context.Context, in *AdvanceTripRequest, opts ...grpc.CallOption) (*AdvanceTripResponse, error) {
	return invoke[AdvanceTripResponse](ctx, c, MethodAdvanceTrip, in, opts)
}

func (c *Client) Reconcile(ctx context.Context, in *TripRef, opts ...grpc.CallOption) (*ReconcileResponse, error) {
	return invoke[ReconcileResponse](ctx, c, MethodReconcile, in, opts)
}

func (c *Client) TripView(ctx context.Context, in *TripRef, opts ...grpc.CallOption) (*TripView, error) {
	return invoke[TripView](ctx, c, MethodTripView, in, opts)
}

func (c *Client) SetFlag(ctx context.Context, in *SetFlagRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, MethodSetFlag, in, opts)
}

func (c *Client) FindItem(ctx context.Context, in *ItemRef, opts ...grpc.CallOption) (*TripItem, error) {
	return invoke[TripItem](ctx, c, MethodFindItem, in, opts)
}

func (c *Client) TotalPickedWeight(ctx context.Context, in *TripRef, opts ...grpc.CallOption) (*WeightResponse, error) {
	return invoke[WeightResponse](ctx, c, MethodTotalPickedWeight, in, opts)
}

func (c *Client) AcknowledgeNew(ctx context.Context, in *TripRef, opts ...grpc.CallOption) (*AcknowledgeNewResponse, error) {
	return invoke[AcknowledgeNewResponse](ctx, c, MethodAcknowledgeNew, in, opts)
}

func (c *Client) ListItems(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListItemsResponse, error) {
	return invoke[ListItemsResponse](ctx, c, MethodListItems, in, opts)
}
