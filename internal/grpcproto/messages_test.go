package grpcproto

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestPairsFromStruct(t *testing.T) {
	pairs := []Pair{{"Content-Length", "123"}, {"X-Empty", ""}}

	// through the wire format
	b, err := proto.Marshal(NewInsertRequest(pairs))
	require.NoError(t, err)
	var in structpb.Struct
	require.NoError(t, proto.Unmarshal(b, &in))

	got, err := PairsFromStruct(&in)
	require.NoError(t, err)
	require.Equal(t, pairs, got)

	got, err = PairsFromStruct(&structpb.Struct{})
	require.NoError(t, err)
	require.Empty(t, got)

	bad, err := structpb.NewStruct(map[string]interface{}{
		KeyHeaders: []interface{}{[]interface{}{"Host"}},
	})
	require.NoError(t, err)
	_, err = PairsFromStruct(bad)
	require.ErrorIs(t, err, ErrBadType)

	bad, err = structpb.NewStruct(map[string]interface{}{
		KeyHeaders: []interface{}{[]interface{}{"Content-Length", 123}},
	})
	require.NoError(t, err)
	_, err = PairsFromStruct(bad)
	require.ErrorIs(t, err, ErrBadType)
}

func TestChunksFromStruct(t *testing.T) {
	field := [][]byte{[]byte("Content-"), []byte("Type")}
	value := [][]byte{{0xd0}, {0x9f}}

	in := NewAppendChunksRequest("guid", field, value)
	b, err := proto.Marshal(in)
	require.NoError(t, err)
	require.NoError(t, proto.Unmarshal(b, in))

	got, err := ChunksFromStruct(in, KeyFieldChunks)
	require.NoError(t, err)
	require.Equal(t, field, got)

	got, err = ChunksFromStruct(in, KeyValueChunks)
	require.NoError(t, err)
	require.Equal(t, value, got)

	got, err = ChunksFromStruct(&structpb.Struct{}, KeyValueChunks)
	require.NoError(t, err)
	require.Nil(t, got)

	bad, err := structpb.NewStruct(map[string]interface{}{
		KeyFieldChunks: []interface{}{"not base64!"},
	})
	require.NoError(t, err)
	_, err = ChunksFromStruct(bad, KeyFieldChunks)
	require.Error(t, err)
}

func TestStringFromStruct(t *testing.T) {
	in := NewFindRequest("guid", "Host")

	guid, err := StringFromStruct(in, KeyGUID)
	require.NoError(t, err)
	require.Equal(t, "guid", guid)

	_, err = StringFromStruct(in, KeyValue)
	require.ErrorIs(t, err, ErrMissingKey)

	in.Fields[KeyValue] = structpb.NewNumberValue(1)
	_, err = StringFromStruct(in, KeyValue)
	require.ErrorIs(t, err, ErrBadType)
}
