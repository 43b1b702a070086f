// Package authctx кладёт проверенные claims в context.Context запроса и достаёт их обратно.
// Общий для HTTP и gRPC транспорта.
package authctx

import (
	"context"
	"strings"

	"exprCalc/internal/domain"
)

type claimsKey struct{}

// WithClaims возвращает контекст с claims пользователя.
func WithClaims(ctx context.Context, c domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// FromContext достаёт claims; ok == false, если запрос не аутентифицирован.
func FromContext(ctx context.Context) (domain.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(domain.Claims)
	return c, ok
}

// BearerToken вынимает токен из заголовка вида "Bearer <token>" (схема без учёта регистра).
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
