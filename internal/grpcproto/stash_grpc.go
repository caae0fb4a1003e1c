package grpcproto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// This is a compile-time assertion to ensure that this file
// is compatible with the grpc package it is being compiled against.
const _ = grpc.SupportPackageIsVersion7

const ServiceName = "headstash.Stash"

// StashClient is the client API for Stash service.
type StashClient interface {
	Insert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Append(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	AppendChunks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Get(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Find(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Remove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type stashClient struct {
	cc grpc.ClientConnInterface
}

func NewStashClient(cc grpc.ClientConnInterface) StashClient {
	return &stashClient{cc}
}

func (c *stashClient) Insert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, "/headstash.Stash/Insert", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *stashClient) Append(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	err := c.cc.Invoke(ctx, "/headstash.Stash/Append", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *stashClient) AppendChunks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	err := c.cc.Invoke(ctx, "/headstash.Stash/AppendChunks", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *stashClient) Get(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, "/headstash.Stash/Get", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *stashClient) Find(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, "/headstash.Stash/Find", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *stashClient) Remove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	err := c.cc.Invoke(ctx, "/headstash.Stash/Remove", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StashServer is the server API for Stash service.
// All implementations must embed UnimplementedStashServer
// for forward compatibility
type StashServer interface {
	Insert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Append(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	AppendChunks(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Get(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Find(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Remove(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	mustEmbedUnimplementedStashServer()
}

// UnimplementedStashServer must be embedded to have forward compatible implementations.
type UnimplementedStashServer struct {
}

func (UnimplementedStashServer) Insert(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Insert not implemented")
}
func (UnimplementedStashServer) Append(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Append not implemented")
}
func (UnimplementedStashServer) AppendChunks(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AppendChunks not implemented")
}
func (UnimplementedStashServer) Get(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedStashServer) Find(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Find not implemented")
}
func (UnimplementedStashServer) Remove(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Remove not implemented")
}
func (UnimplementedStashServer) mustEmbedUnimplementedStashServer() {}

func RegisterStashServer(s grpc.ServiceRegistrar, srv StashServer) {
	s.RegisterService(&Stash_ServiceDesc, srv)
}

// unaryHandler adapts one StashServer method to grpc.MethodDesc.Handler.
func unaryHandler[Resp any](method string, call func(StashServer, context.Context, *structpb.Struct) (Resp, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StashServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(StashServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Stash_ServiceDesc is the grpc.ServiceDesc for Stash service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var Stash_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StashServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Insert",
			Handler:    unaryHandler("Insert", StashServer.Insert),
		},
		{
			MethodName: "Append",
			Handler:    unaryHandler("Append", StashServer.Append),
		},
		{
			MethodName: "AppendChunks",
			Handler:    unaryHandler("AppendChunks", StashServer.AppendChunks),
		},
		{
			MethodName: "Get",
			Handler:    unaryHandler("Get", StashServer.Get),
		},
		{
			MethodName: "Find",
			Handler:    unaryHandler("Find", StashServer.Find),
		},
		{
			MethodName: "Remove",
			Handler:    unaryHandler("Remove", StashServer.Remove),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "headstash.proto",
}
