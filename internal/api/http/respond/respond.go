// Package respond переводит ошибки юзкейсов в HTTP-ответы единого формата.
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"exprCalc/internal/domain"
	"exprCalc/internal/evaluator"
)

// Коды ошибок в поле "error" (помимо видов ошибок вычислителя).
const (
	CodeInvalidRequest     = "invalid_request"
	CodeValidation         = "validation"
	CodeUnauthorized       = "unauthorized"
	CodeInvalidCredentials = "invalid_credentials"
	CodeConflict           = "conflict"
	CodeNotFound           = "not_found"
	CodeInternal           = "internal"
)

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// BadRequest — невалидное тело запроса (не разобрался JSON).
func BadRequest(ctx *gin.Context, log *slog.Logger, op string, err error) {
	log.Warn(op+" bind failed", "error", err)
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: CodeInvalidRequest, Message: "invalid request body"})
}

// Error выбирает статус по типу ошибки. Клиентские ошибки логируются как warn, серверные как error.
func Error(ctx *gin.Context, log *slog.Logger, op string, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Warn(op+" rejected", "status", status, "error", err)
	}
	ctx.AbortWithStatusJSON(status, body)
}

func classify(err error) (int, ErrorResponse) {
	var evalErr *evaluator.Error
	if errors.As(err, &evalErr) {
		return http.StatusBadRequest, ErrorResponse{Error: string(evalErr.Kind), Message: evalErr.Message}
	}
	var fields domain.FieldErrors
	if errors.As(err, &fields) {
		return http.StatusBadRequest, ErrorResponse{Error: CodeValidation, Message: "validation failed", Fields: fields}
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{Error: CodeInvalidCredentials, Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{Error: CodeUnauthorized, Message: "authentication required"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, ErrorResponse{Error: CodeConflict, Message: err.Error()}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrorResponse{Error: CodeNotFound, Message: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: CodeInternal, Message: "internal server error"}
}
