package grpcfactory

import (
	"context"
	"time"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/saf/account"
	"xdao.co/saf/trap"
)

// Client implements the factory provisioning surface over a Factory gRPC
// service.
type Client struct {
	cc     *grpc.ClientConn
	client FactoryClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewFactoryClient(cc), Timeout: 0}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Create asks the daemon to deploy an account for owner.
func (c *Client) Create(owner [account.KeySize]byte) (cid.Cid, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Create(ctx, wrapperspb.Bytes(owner[:]))
	if err != nil {
		return cid.Undef, mapRPC(err)
	}
	return decodeAddress(reply.GetValue())
}

// DeriveAddress predicts the account address for owner without deploying.
func (c *Client) DeriveAddress(owner [account.KeySize]byte) (cid.Cid, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.DeriveAddress(ctx, wrapperspb.Bytes(owner[:]))
	if err != nil {
		return cid.Undef, mapRPC(err)
	}
	return decodeAddress(reply.GetValue())
}

// Blueprint returns the account blueprint ID the daemon's factory deploys.
func (c *Client) Blueprint() (cid.Cid, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Blueprint(ctx, &emptypb.Empty{})
	if err != nil {
		return cid.Undef, mapRPC(err)
	}
	return decodeAddress(reply.GetValue())
}

// Exists reports whether an account is already deployed for owner.
func (c *Client) Exists(owner [account.KeySize]byte) (bool, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Exists(ctx, wrapperspb.Bytes(owner[:]))
	if err != nil {
		return false, mapRPC(err)
	}
	return reply.GetValue(), nil
}

func decodeAddress(s string) (cid.Cid, error) {
	id, err := cid.Decode(s)
	if err != nil || !id.Defined() {
		return cid.Undef, trap.Wrap(trap.KindInternal, "SAF-RPC-001", "server returned an invalid address", err)
	}
	return id, nil
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
