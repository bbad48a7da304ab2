package grpcfactory

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/saf/trap"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.AlreadyExists:
		// Server uses AlreadyExists when an instance occupies the derived address.
		return trap.Wrap(trap.KindDeploy, "SAF-DEPLOY-201", st.Message(), err)
	case codes.FailedPrecondition:
		// Server uses FailedPrecondition for a factory with no blueprint.
		return trap.Wrap(trap.KindDeploy, "SAF-DEPLOY-101", st.Message(), err)
	case codes.InvalidArgument:
		return trap.Wrap(trap.KindInit, "SAF-RPC-002", st.Message(), err)
	default:
		return err
	}
}
