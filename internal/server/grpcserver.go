package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/S0me0neR0man/headstash/internal/config"
	"github.com/S0me0neR0man/headstash/internal/grpcproto"
	"github.com/S0me0neR0man/headstash/internal/head"
	"github.com/S0me0neR0man/headstash/internal/stashdb"
	"github.com/S0me0neR0man/headstash/internal/token"
)

var (
	errMissingMetadata = status.Errorf(codes.InvalidArgument, "missing metadata")
	errInvalidToken    = status.Errorf(codes.Unauthenticated, "invalid token")
)

type GRPCServer struct {
	grpcproto.UnimplementedStashServer

	stash *stashdb.Stash
	sugar *zap.SugaredLogger
	gserv *grpc.Server
	conf  *config.Config

	wg sync.WaitGroup
}

func NewStashServer(stash *stashdb.Stash, conf *config.Config, logger *zap.Logger) *GRPCServer {
	ss := &GRPCServer{
		stash: stash,
		conf:  conf,
		sugar: logger.Sugar(),
	}

	opts := []grpc.ServerOption{
		grpc.UnaryInterceptor(ss.ensureValidToken),
	}
	ss.gserv = grpc.NewServer(opts...)
	grpcproto.RegisterStashServer(ss.gserv, ss)

	return ss
}

// Start listens on conf.Address and serves until ctx is done
func (ss *GRPCServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", ss.conf.Address)
	if err != nil {
		return err
	}
	return ss.Serve(ctx, lis)
}

// Serve serves on lis until ctx is done. After a graceful stop the stash is
// saved one last time when saving is enabled.
func (ss *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	ss.sugar.Infow("gprcserver start", "address", lis.Addr().String())

	if ss.conf.StoreInterval != 0 {
		ss.wg.Add(1)
		go ss.saveToDisk(ctx)
	}
	ss.wg.Add(1)
	go ss.gracefulStop(ctx)

	return ss.gserv.Serve(lis)
}

func (ss *GRPCServer) saveToDisk(ctx context.Context) {
	defer ss.wg.Done()

	ticker := time.NewTicker(ss.conf.StoreInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := ss.stash.SaveToDisk(ctx)
			if err != nil {
				ss.sugar.Errorw("stash.SaveToDisk", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (ss *GRPCServer) gracefulStop(ctx context.Context) {
	defer ss.wg.Done()

	<-ctx.Done()
	ss.gserv.GracefulStop()
	ss.sugar.Infow("gprcserver stopped")

	if ss.conf.StoreInterval == 0 {
		return
	}
	// ctx is already done
	if err := ss.stash.SaveToDisk(context.Background()); err != nil {
		ss.sugar.Errorw("final stash.SaveToDisk", "error", err)
	}
}

// Wait blocks until the server goroutines exit, including the final save
func (ss *GRPCServer) Wait() {
	ss.wg.Wait()
}

func (ss *GRPCServer) ensureValidToken(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, errMissingMetadata
	}

	if ss.conf.Token != "" && !token.Valid(md[token.MetadataKey], ss.conf.Token) {
		ss.sugar.Warnw("ensureValidToken", "method", info.FullMethod, "error", errInvalidToken)
		return nil, errInvalidToken
	}
	// Continue execution of handler after ensuring a valid token.
	return handler(ctx, req)
}

func (ss *GRPCServer) Insert(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	pairs, err := grpcproto.PairsFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	guid, err := ss.stash.Insert(toStashPairs(pairs))
	if err != nil {
		return nil, ss.toStatus("insert", err)
	}

	return grpcproto.NewGUIDResponse(string(guid)), nil
}

func (ss *GRPCServer) Append(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	guid, field, err := guidAndField(in)
	if err != nil {
		return nil, err
	}
	value, err := grpcproto.StringFromStruct(in, grpcproto.KeyValue)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err = ss.stash.Append(guid, field, value); err != nil {
		return nil, ss.toStatus("append", err)
	}
	return &emptypb.Empty{}, nil
}

func (ss *GRPCServer) AppendChunks(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	guid, err := getGUID(in)
	if err != nil {
		return nil, err
	}
	fieldChunks, err := grpcproto.ChunksFromStruct(in, grpcproto.KeyFieldChunks)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	valueChunks, err := grpcproto.ChunksFromStruct(in, grpcproto.KeyValueChunks)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err = ss.stash.AppendChunks(guid, fieldChunks, valueChunks); err != nil {
		return nil, ss.toStatus("appendChunks", err)
	}
	return &emptypb.Empty{}, nil
}

func (ss *GRPCServer) Get(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	guid, err := getGUID(in)
	if err != nil {
		return nil, err
	}

	pairs, err := ss.stash.Get(guid)
	if err != nil {
		return nil, ss.toStatus("get", err)
	}

	out := make([]grpcproto.Pair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, grpcproto.Pair(p))
	}
	return grpcproto.NewHeadersResponse(out), nil
}

func (ss *GRPCServer) Find(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	guid, field, err := guidAndField(in)
	if err != nil {
		return nil, err
	}

	value, err := ss.stash.Find(guid, field)
	if err != nil {
		return nil, ss.toStatus("find", err)
	}
	return grpcproto.NewFindResponse(value), nil
}

func (ss *GRPCServer) Remove(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	guid, err := getGUID(in)
	if err != nil {
		return nil, err
	}

	if err = ss.stash.Remove(guid); err != nil {
		return nil, ss.toStatus("remove", err)
	}
	return &emptypb.Empty{}, nil
}

// toStatus maps stash and buffer errors to gRPC codes
func (ss *GRPCServer) toStatus(method string, err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, stashdb.ErrRecordNotFound):
		code = codes.NotFound
	case errors.Is(err, head.ErrCapacityExceeded),
		errors.Is(err, head.ErrInsufficientSpace),
		errors.Is(err, head.ErrOutOfMemory):
		code = codes.ResourceExhausted
	default:
		code = codes.InvalidArgument
	}

	ss.sugar.Debugw(method, "code", code, "error", err)
	return status.Error(code, err.Error())
}

func getGUID(in *structpb.Struct) (stashdb.GUIDType, error) {
	guid, err := grpcproto.StringFromStruct(in, grpcproto.KeyGUID)
	if err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}
	return stashdb.GUIDType(guid), nil
}

func guidAndField(in *structpb.Struct) (stashdb.GUIDType, string, error) {
	guid, err := getGUID(in)
	if err != nil {
		return "", "", err
	}
	field, err := grpcproto.StringFromStruct(in, grpcproto.KeyField)
	if err != nil {
		return "", "", status.Error(codes.InvalidArgument, err.Error())
	}
	return guid, field, nil
}

func toStashPairs(in []grpcproto.Pair) []stashdb.Pair {
	out := make([]stashdb.Pair, 0, len(in))
	for _, p := range in {
		out = append(out, stashdb.Pair(p))
	}
	return out
}
