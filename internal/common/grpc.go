package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor tags each call with a request id, logs it and maps
// application errors onto gRPC status codes.
func UnaryServerInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := RequestIDFromContext(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
			ctx = WithRequestID(ctx, requestID)
		}
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			err = ToStatus(err)
			logger.Warn("grpc.call.failed",
				"method", info.FullMethod,
				"request_id", requestID,
				"code", status.Code(err).String(),
				"error", err,
			)
			return nil, err
		}
		logger.Debug("grpc.call.ok",
			"method", info.FullMethod,
			"request_id", requestID,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return resp, nil
	}
}
