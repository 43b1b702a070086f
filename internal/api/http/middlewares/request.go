package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"exprCalc/internal/api/authctx"
)

// RequestLogger логирует каждый запрос: метод, путь, статус, длительность, client IP и пользователя,
// если он аутентифицирован. Ответы 5xx пишутся уровнем warn.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"ip", c.ClientIP(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if claims, ok := authctx.FromContext(c.Request.Context()); ok {
			attrs = append(attrs, "user_id", claims.UserID)
		}
		if status >= http.StatusInternalServerError {
			log.Warn("request", attrs...)
			return
		}
		log.Info("request", attrs...)
	}
}
