package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RPCRecorder receives the outcome of every call.
type RPCRecorder interface {
	ObserveRPC(method, code string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRPC(string, string, time.Duration) {}

// UnaryServerInterceptor logs and records each unary call.
func UnaryServerInterceptor(log *zap.Logger, rec RPCRecorder) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		observe(log, rec, info.FullMethod, err, time.Since(start))
		return resp, err
	}
}

// StreamServerInterceptor logs and records each streaming call when it ends.
func StreamServerInterceptor(log *zap.Logger, rec RPCRecorder) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		start := time.Now()
		log.Debug("stream started", zap.String("method", info.FullMethod))
		err := handler(srv, ss)
		observe(log, rec, info.FullMethod, err, time.Since(start))
		return err
	}
}

func observe(log *zap.Logger, rec RPCRecorder, method string, err error, d time.Duration) {
	code := status.Code(err)
	rec.ObserveRPC(method, code.String(), d)
	log.Debug("call finished",
		zap.String("method", method),
		zap.Stringer("code", code),
		zap.Duration("duration", d),
	)
}

// RecoveryUnaryInterceptor turns a handler panic into codes.Internal.
func RecoveryUnaryInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(log, info.FullMethod, r)
			}
		}()
		return handler(ctx, req)
	}
}

// RecoveryStreamInterceptor turns a handler panic into codes.Internal.
func RecoveryStreamInterceptor(log *zap.Logger) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(log, info.FullMethod, r)
			}
		}()
		return handler(srv, ss)
	}
}

func recovered(log *zap.Logger, method string, r interface{}) error {
	log.Error("handler panicked",
		zap.String("method", method),
		zap.Any("panic", r),
		zap.ByteString("stack", debug.Stack()),
	)
	return status.Error(codes.Internal, "internal error")
}
