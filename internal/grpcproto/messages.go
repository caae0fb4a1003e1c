// Package grpcproto describes the headstash.Stash gRPC service.
//
// Requests and replies are google.protobuf.Struct messages with the keys
// below. Chunks are base64 so that a piece split inside a multi-byte
// sequence still travels as a valid proto string.
//
//	Insert        {headers: [[field, value], ...]}    -> {guid}
//	Append        {guid, field, value}                -> Empty
//	AppendChunks  {guid, field_chunks, value_chunks}  -> Empty
//	Get           {guid}                              -> {headers}
//	Find          {guid, field}                       -> {value}
//	Remove        {guid}                              -> Empty
package grpcproto

import (
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

const (
	KeyGUID        = "guid"
	KeyField       = "field"
	KeyValue       = "value"
	KeyHeaders     = "headers"
	KeyFieldChunks = "field_chunks"
	KeyValueChunks = "value_chunks"
)

var (
	ErrMissingKey = errors.New("grpcproto: missing key")
	ErrBadType    = errors.New("grpcproto: unexpected value type")
)

// Pair one header as it travels on the wire
type Pair struct {
	Field string
	Value string
}

func NewInsertRequest(pairs []Pair) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyHeaders: headersValue(pairs),
	}}
}

// NewHeadersResponse is the Get reply
func NewHeadersResponse(pairs []Pair) *structpb.Struct {
	return NewInsertRequest(pairs)
}

func NewGUIDRequest(guid string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyGUID: structpb.NewStringValue(guid),
	}}
}

// NewGUIDResponse is the Insert reply
func NewGUIDResponse(guid string) *structpb.Struct {
	return NewGUIDRequest(guid)
}

func NewAppendRequest(guid, field, value string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyGUID:  structpb.NewStringValue(guid),
		KeyField: structpb.NewStringValue(field),
		KeyValue: structpb.NewStringValue(value),
	}}
}

func NewFindRequest(guid, field string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyGUID:  structpb.NewStringValue(guid),
		KeyField: structpb.NewStringValue(field),
	}}
}

func NewFindResponse(value string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyValue: structpb.NewStringValue(value),
	}}
}

func NewAppendChunksRequest(guid string, fieldChunks, valueChunks [][]byte) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyGUID:        structpb.NewStringValue(guid),
		KeyFieldChunks: chunksValue(fieldChunks),
		KeyValueChunks: chunksValue(valueChunks),
	}}
}

// StringFromStruct returns the string stored under key
func StringFromStruct(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrMissingKey, key)
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", ErrBadType, key)
	}
	return sv.StringValue, nil
}

// PairsFromStruct decodes the headers list, a missing list means no headers
func PairsFromStruct(s *structpb.Struct) ([]Pair, error) {
	v, ok := s.GetFields()[KeyHeaders]
	if !ok {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%w: %q is not a list", ErrBadType, KeyHeaders)
	}

	pairs := make([]Pair, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		kv := item.GetListValue().GetValues()
		if len(kv) != 2 {
			return nil, fmt.Errorf("%w: header %d is not a [field, value] pair", ErrBadType, i)
		}
		field, fok := kv[0].GetKind().(*structpb.Value_StringValue)
		value, vok := kv[1].GetKind().(*structpb.Value_StringValue)
		if !fok || !vok {
			return nil, fmt.Errorf("%w: header %d is not a string pair", ErrBadType, i)
		}
		pairs = append(pairs, Pair{Field: field.StringValue, Value: value.StringValue})
	}
	return pairs, nil
}

// ChunksFromStruct decodes a base64 chunk list, a missing list means no chunks
func ChunksFromStruct(s *structpb.Struct, key string) ([][]byte, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%w: %q is not a list", ErrBadType, key)
	}

	chunks := make([][]byte, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		sv, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not a string", ErrBadType, key, i)
		}
		b, err := base64.StdEncoding.DecodeString(sv.StringValue)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		chunks = append(chunks, b)
	}
	return chunks, nil
}

func headersValue(pairs []Pair) *structpb.Value {
	values := make([]*structpb.Value, 0, len(pairs))
	for _, p := range pairs {
		values = append(values, structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
			structpb.NewStringValue(p.Field),
			structpb.NewStringValue(p.Value),
		}}))
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

func chunksValue(chunks [][]byte) *structpb.Value {
	values := make([]*structpb.Value, 0, len(chunks))
	for _, c := range chunks {
		values = append(values, structpb.NewStringValue(base64.StdEncoding.EncodeToString(c)))
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}
