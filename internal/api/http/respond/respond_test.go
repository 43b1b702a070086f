package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exprCalc/internal/domain"
	"exprCalc/internal/evaluator"
)

func TestClassify(t *testing.T) {
	_, evalErr := evaluator.Evaluate("5 / 0")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "ошибка вычислителя", err: evalErr, status: http.StatusBadRequest, code: "DivisionByZeroLiteral"},
		{name: "ошибки полей", err: domain.FieldErrors{"email": "bad"}, status: http.StatusBadRequest, code: CodeValidation},
		{name: "неверные учётные данные", err: domain.ErrInvalidCredentials, status: http.StatusUnauthorized, code: CodeInvalidCredentials},
		{name: "обёрнутый unauthorized", err: fmt.Errorf("%w: expired", domain.ErrUnauthorized), status: http.StatusUnauthorized, code: CodeUnauthorized},
		{name: "email занят", err: domain.ErrUserExists, status: http.StatusConflict, code: CodeConflict},
		{name: "не найден", err: domain.ErrUserNotFound, status: http.StatusNotFound, code: CodeNotFound},
		{name: "прочее", err: errors.New("db down"), status: http.StatusInternalServerError, code: CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error)
		})
	}
}

func TestError_WritesBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	Error(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), "test", domain.FieldErrors{"name": "too short"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeValidation, body.Error)
	assert.Equal(t, map[string]string{"name": "too short"}, body.Fields)
	assert.True(t, ctx.IsAborted())
}

func TestError_HidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	Error(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), "test", errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}
