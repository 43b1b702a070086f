package interceptors

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"exprCalc/internal/api/authctx"
	"exprCalc/internal/domain"
	"exprCalc/internal/ports"
)

// AuthUnaryInterceptor проверяет access-токен из метаданных "authorization: Bearer <token>"
// для методов перечисленных сервисов и кладёт claims в контекст. Остальные методы
// (например, health) пропускаются без проверки.
func AuthUnaryInterceptor(uc ports.IAuthUseCase, log *slog.Logger, services ...string) grpc.UnaryServerInterceptor {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !protected(info.FullMethod, services) {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		vals := md.Get("authorization")
		if len(vals) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization metadata")
		}
		token, ok := authctx.BearerToken(vals[0])
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "invalid authorization metadata")
		}

		claims, err := uc.Authenticate(ctx, token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
			}
			log.Error("grpc authenticate failed", "method", info.FullMethod, "error", err)
			return nil, status.Error(codes.Unavailable, "authentication unavailable")
		}
		return handler(authctx.WithClaims(ctx, *claims), req)
	}
}

func protected(fullMethod string, services []string) bool {
	for _, s := range services {
		if strings.HasPrefix(fullMethod, "/"+s+"/") {
			return true
		}
	}
	return false
}
