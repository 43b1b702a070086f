package middlewares

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"exprCalc/internal/api/authctx"
	"exprCalc/internal/api/http/respond"
	"exprCalc/internal/domain"
	"exprCalc/internal/ports"
)

// claimsKey — ключ claims в gin.Context.
const claimsKey = "claims"

// Auth требует заголовок Authorization: Bearer <access>. Проверенные claims кладутся
// и в gin.Context, и в context.Context запроса.
func Auth(uc ports.IAuthUseCase, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := authctx.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			respond.Error(c, log, "auth", errors.Join(domain.ErrUnauthorized, errors.New("missing bearer token")))
			return
		}
		claims, err := uc.Authenticate(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, log, "auth", err)
			return
		}
		c.Set(claimsKey, *claims)
		c.Request = c.Request.WithContext(authctx.WithClaims(c.Request.Context(), *claims))
		c.Next()
	}
}

// Claims возвращает claims, положенные мидлварью Auth.
func Claims(c *gin.Context) (domain.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return domain.Claims{}, false
	}
	claims, ok := v.(domain.Claims)
	return claims, ok
}
