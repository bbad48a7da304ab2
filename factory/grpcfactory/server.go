package grpcfactory

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/saf/account"
	"xdao.co/saf/factory"
	"xdao.co/saf/trap"
)

// Server exposes a factory.Service over the Factory gRPC service.
type Server struct {
	UnimplementedFactoryServer
	Factory *factory.Service
}

func ownerFromRequest(in *wrapperspb.BytesValue) ([account.KeySize]byte, error) {
	var owner [account.KeySize]byte
	b := in.GetValue()
	if len(b) != account.KeySize {
		return owner, status.Error(codes.InvalidArgument, "owner key must be 32 bytes")
	}
	copy(owner[:], b)
	return owner, nil
}

func (s *Server) Create(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s == nil || s.Factory == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing factory")
	}
	owner, err := ownerFromRequest(in)
	if err != nil {
		return nil, err
	}
	addr, err := s.Factory.Create(owner)
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(addr.String()), nil
}

func (s *Server) DeriveAddress(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s == nil || s.Factory == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing factory")
	}
	owner, err := ownerFromRequest(in)
	if err != nil {
		return nil, err
	}
	addr, err := s.Factory.Address(owner)
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(addr.String()), nil
}

func (s *Server) Blueprint(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error) {
	_ = ctx
	_ = in
	if s == nil || s.Factory == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing factory")
	}
	blueprint, err := s.Factory.Blueprint()
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(blueprint.String()), nil
}

func (s *Server) Exists(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if s == nil || s.Factory == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing factory")
	}
	owner, err := ownerFromRequest(in)
	if err != nil {
		return nil, err
	}
	exists, err := s.Factory.Exists(owner)
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(exists), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case trap.Code(err) == "SAF-DEPLOY-201":
		return status.Error(codes.AlreadyExists, err.Error())
	case trap.Code(err) == "SAF-DEPLOY-101":
		return status.Error(codes.FailedPrecondition, err.Error())
	case trap.IsKind(err, trap.KindInit):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
