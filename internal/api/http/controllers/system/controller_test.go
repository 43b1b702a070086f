package system

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"exprCalc/internal/mocks"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func setup(t *testing.T) (*gin.Engine, *mocks.MockIOperationRepository) {
	gin.SetMode(gin.TestMode)
	repo := mocks.NewMockIOperationRepository(gomock.NewController(t))
	deps := map[string]Pinger{
		"storage": repo,
		"redis":   pingFunc(func(context.Context) error { return nil }),
	}
	r := gin.New()
	New(deps, "test", slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r)
	return r, repo
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLiveness(t *testing.T) {
	r, _ := setup(t)
	w := get(r, "/liveness")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}

func TestReadyness(t *testing.T) {
	r, repo := setup(t)
	repo.EXPECT().Ping(gomock.Any()).Return(nil)

	w := get(r, "/readyness")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"redis":"ok","storage":"ok"}}`, w.Body.String())
}

func TestReadyness_StorageDown(t *testing.T) {
	r, repo := setup(t)
	repo.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	w := get(r, "/readyness")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not ready","checks":{"redis":"ok","storage":"connection refused"}}`, w.Body.String())
}

func TestMetrics(t *testing.T) {
	r, _ := setup(t)
	w := get(r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRoot(t *testing.T) {
	r, _ := setup(t)
	w := get(r, "/")
	assert.JSONEq(t, `{"name":"exprCalc","version":"test","api":"/api/v1"}`, w.Body.String())
}
