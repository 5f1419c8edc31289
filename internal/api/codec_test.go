package api

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	require.Equal(t, CodecName, c.Name())
}

func TestCodec_FieldNames(t *testing.T) {
	b, err := Codec{}.Marshal(&SetFlagRequest{TripID: "t", ItemID: "i", Flag: "pick", Value: true})
	require.NoError(t, err)
	require.JSONEq(t, `{"trip_id":"t","item_id":"i","flag":"pick","value":true}`, string(b))

	var out SetFlagRequest
	require.NoError(t, Codec{}.Unmarshal(b, &out))
	require.True(t, out.Value)

	var empty Empty
	require.NoError(t, Codec{}.Unmarshal(nil, &empty))
	require.Error(t, Codec{}.Unmarshal([]byte("{"), &out))
}

func TestFullMethod(t *testing.T) {
	require.Equal(t, "/packtrip.v1.Packing/TripView", FullMethod(MethodTripView))
}
