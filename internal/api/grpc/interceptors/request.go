package interceptors

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// LoggingUnaryInterceptor логирует каждый unary RPC: метод, адрес клиента, длительность, код/ошибка.
func LoggingUnaryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		latency := time.Since(start)

		attrs := []any{"method", info.FullMethod, "latency_ms", latency.Milliseconds()}
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			attrs = append(attrs, "peer", p.Addr.String())
		}
		if err == nil {
			log.Info("grpc request", append(attrs, "grpc_code", codes.OK)...)
			return resp, nil
		}

		st, _ := status.FromError(err)
		attrs = append(attrs, "grpc_code", st.Code(), "error", st.Message())
		if st.Code() == codes.Internal || st.Code() == codes.Unknown {
			log.Error("grpc request", attrs...)
		} else {
			log.Warn("grpc request", attrs...)
		}
		return resp, err
	}
}
