package grpc

import (
	"context"
	"errors"

	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCErrorResponse переводит ошибку в статус gRPC с безопасным сообщением.
func GRPCErrorResponse(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	pub, ok := e.Public(err)
	if !ok {
		return status.Error(codes.Internal, e.ErrInternal.Error())
	}

	switch {
	case errors.Is(pub, e.ErrValidation):
		return status.Error(codes.InvalidArgument, pub.Msg)
	case errors.Is(pub, e.ErrConflict):
		return status.Error(codes.AlreadyExists, pub.Msg)
	case errors.Is(pub, e.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, pub.Msg)
	case errors.Is(pub, e.ErrForbidden):
		return status.Error(codes.PermissionDenied, pub.Msg)
	case errors.Is(pub, e.ErrNotFound):
		return status.Error(codes.NotFound, pub.Msg)
	case errors.Is(pub, e.ErrMethodNotAllowed):
		return status.Error(codes.Unimplemented, pub.Msg)
	default:
		return status.Error(codes.Internal, e.ErrInternal.Error())
	}
}

// unaryErrorInterceptor логирует ошибки обработчиков и приводит их к статусам gRPC.
func unaryErrorInterceptor(log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			log.Errorf(err, "grpc %s", info.FullMethod)
			return nil, GRPCErrorResponse(err)
		}
		return resp, nil
	}
}
