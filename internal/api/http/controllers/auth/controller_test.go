package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"exprCalc/internal/domain"
	"exprCalc/internal/mocks"
)

var testClaims = domain.Claims{UserID: "user-1", Email: "ana@example.com", TokenID: "jti-1"}

func newRouter(t *testing.T) (*gin.Engine, *mocks.MockIAuthUseCase) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAuthUseCase(ctrl)
	r := gin.New()
	New(uc, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r)
	return r, uc
}

func do(r *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer access")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func expectAuth(uc *mocks.MockIAuthUseCase) {
	uc.EXPECT().Authenticate(gomock.Any(), "access").Return(&testClaims, nil)
}

func sampleUser() *domain.User {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.User{ID: "user-1", Name: "Ana", Email: "ana@example.com", PasswordHash: "secret-hash", CreatedAt: at, UpdatedAt: at}
}

func TestRegister(t *testing.T) {
	r, uc := newRouter(t)
	uc.EXPECT().Register(gomock.Any(), domain.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "password1", ConfirmPassword: "password1",
	}).Return(sampleUser(), &domain.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900, TokenType: "Bearer"}, nil)

	w := do(r, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"password1","confirm_password":"password1"}`, false)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "a", resp.Tokens.AccessToken)
	assert.NotContains(t, w.Body.String(), "secret-hash")
}

func TestRegister_ValidationError(t *testing.T) {
	r, uc := newRouter(t)
	uc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, nil, domain.FieldErrors{"email": "enter a valid email"})

	w := do(r, http.MethodPost, "/api/v1/auth/register", `{"name":"Ana","email":"x"}`, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"validation","message":"validation failed","fields":{"email":"enter a valid email"}}`, w.Body.String())
}

func TestRegister_Conflict(t *testing.T) {
	r, uc := newRouter(t)
	uc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, nil, domain.ErrUserExists)

	w := do(r, http.MethodPost, "/api/v1/auth/register", `{"name":"Ana","email":"ana@example.com","password":"password1"}`, false)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_BadJSON(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodPost, "/api/v1/auth/register", `{"name":`, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}

func TestLogin(t *testing.T) {
	r, uc := newRouter(t)
	uc.EXPECT().Login(gomock.Any(), "ana@example.com", "password1").
		Return(sampleUser(), &domain.TokenPair{AccessToken: "a"}, nil)

	w := do(r, http.MethodPost, "/api/v1/auth/login", `{"email":"ana@example.com","password":"password1"}`, false)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r, uc := newRouter(t)
	uc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil, domain.ErrInvalidCredentials)

	w := do(r, http.MethodPost, "/api/v1/auth/login", `{"email":"ana@example.com","password":"nope"}`, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
}

func TestRefresh(t *testing.T) {
	r, uc := newRouter(t)
	uc.EXPECT().Refresh(gomock.Any(), "rt").Return(&domain.TokenPair{AccessToken: "new"}, nil)

	w := do(r, http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"rt"}`, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"new"`)
}

func TestRefresh_MissingToken(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodPost, "/api/v1/auth/refresh", `{}`, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	r, _ := newRouter(t)
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/auth/profile"},
		{http.MethodPatch, "/api/v1/auth/profile"},
		{http.MethodDelete, "/api/v1/auth/account"},
	}
	for _, rt := range routes {
		w := do(r, rt.method, rt.path, "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.path)
	}
}

func TestLogout(t *testing.T) {
	r, uc := newRouter(t)
	expectAuth(uc)
	uc.EXPECT().Logout(gomock.Any(), testClaims).Return(nil)

	w := do(r, http.MethodPost, "/api/v1/auth/logout", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfile(t *testing.T) {
	r, uc := newRouter(t)
	expectAuth(uc)
	uc.EXPECT().Profile(gomock.Any(), "user-1").Return(sampleUser(), nil)

	w := do(r, http.MethodGet, "/api/v1/auth/profile", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ana", resp.Name)
}

func TestUpdateProfile(t *testing.T) {
	r, uc := newRouter(t)
	expectAuth(uc)
	uc.EXPECT().UpdateProfile(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, in domain.UpdateProfileInput) (*domain.User, error) {
			require.NotNil(t, in.Name)
			assert.Equal(t, "Bob", *in.Name)
			assert.Nil(t, in.Email)
			u := sampleUser()
			u.Name = *in.Name
			return u, nil
		})

	w := do(r, http.MethodPatch, "/api/v1/auth/profile", `{"name":"Bob"}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Bob"`)
}

func TestDeleteAccount(t *testing.T) {
	r, uc := newRouter(t)
	expectAuth(uc)
	uc.EXPECT().DeleteAccount(gomock.Any(), testClaims).Return(nil)

	w := do(r, http.MethodDelete, "/api/v1/auth/account", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "account deleted")
}
