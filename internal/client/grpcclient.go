package client

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/S0me0neR0man/headstash/internal/grpcproto"
	"github.com/S0me0neR0man/headstash/internal/token"
)

type GRPCClient struct {
	conn   *grpc.ClientConn
	client grpcproto.StashClient
}

// NewGRPClient dials addr. An empty tok sends no authorization metadata.
// opts are applied after the defaults.
func NewGRPClient(addr, tok string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := GRPCClient{}

	opts = append([]grpc.DialOption{
		grpc.WithPerRPCCredentials(token.NewTokens(tok)),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	var err error
	c.conn, err = grpc.Dial(addr, opts...)
	if err != nil {
		return nil, err
	}
	c.client = grpcproto.NewStashClient(c.conn)

	return &c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Insert(ctx context.Context, pairs []grpcproto.Pair) (string, error) {
	resp, err := c.client.Insert(ctx, grpcproto.NewInsertRequest(pairs))
	if err != nil {
		return "", err
	}
	return grpcproto.StringFromStruct(resp, grpcproto.KeyGUID)
}

func (c *GRPCClient) Append(ctx context.Context, guid, field, value string) error {
	_, err := c.client.Append(ctx, grpcproto.NewAppendRequest(guid, field, value))
	return err
}

func (c *GRPCClient) AppendChunks(ctx context.Context, guid string, fieldChunks, valueChunks [][]byte) error {
	_, err := c.client.AppendChunks(ctx, grpcproto.NewAppendChunksRequest(guid, fieldChunks, valueChunks))
	return err
}

func (c *GRPCClient) Get(ctx context.Context, guid string) ([]grpcproto.Pair, error) {
	resp, err := c.client.Get(ctx, grpcproto.NewGUIDRequest(guid))
	if err != nil {
		return nil, err
	}
	return grpcproto.PairsFromStruct(resp)
}

func (c *GRPCClient) Find(ctx context.Context, guid, field string) (string, error) {
	resp, err := c.client.Find(ctx, grpcproto.NewFindRequest(guid, field))
	if err != nil {
		return "", err
	}
	return grpcproto.StringFromStruct(resp, grpcproto.KeyValue)
}

func (c *GRPCClient) Remove(ctx context.Context, guid string) error {
	_, err := c.client.Remove(ctx, grpcproto.NewGUIDRequest(guid))
	return err
}
