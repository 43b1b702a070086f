package auth

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"exprCalc/internal/domain"
	"exprCalc/internal/mocks"
	"exprCalc/internal/pkg/password"
	"exprCalc/internal/pkg/token"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type deps struct {
	users  *mocks.MockIUserRepository
	ops    *mocks.MockIOperationRepository
	store  *mocks.MockITokenStore
	tokens *token.Manager
	hasher *password.Hasher
}

func newUseCase(t *testing.T) (*UseCase, deps) {
	ctrl := gomock.NewController(t)
	d := deps{
		users: mocks.NewMockIUserRepository(ctrl),
		ops:   mocks.NewMockIOperationRepository(ctrl),
		store: mocks.NewMockITokenStore(ctrl),
		tokens: token.New(token.Config{
			Secret:     "test-secret",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: time.Hour,
			Issuer:     "test",
		}),
		hasher: password.New(bcrypt.MinCost),
	}
	return New(d.users, d.ops, d.store, d.tokens, d.hasher, newTestLogger()), d
}

func existingUser(t *testing.T, h *password.Hasher, pw string) *domain.User {
	hash, err := h.Hash(pw)
	require.NoError(t, err)
	return &domain.User{ID: "user-1", Name: "Ana", Email: "ana@example.com", PasswordHash: hash}
}

func TestRegister_Success(t *testing.T) {
	uc, d := newUseCase(t)

	var created domain.User
	gomock.InOrder(
		d.users.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(nil, domain.ErrUserNotFound),
		d.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u domain.User) error {
				created = u
				return nil
			}),
	)

	user, pair, err := uc.Register(context.Background(), domain.RegisterInput{
		Name: " Ana ", Email: "Ana@Example.com", Password: "password1", ConfirmPassword: "password1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.True(t, d.hasher.Verify("password1", created.PasswordHash))
	assert.Equal(t, created, *user)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)
	claims, err := d.tokens.ValidateAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	_, err = d.tokens.ValidateRefresh(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestRegister_ValidationError(t *testing.T) {
	uc, _ := newUseCase(t)

	_, _, err := uc.Register(context.Background(), domain.RegisterInput{Name: "A", Email: "x", Password: "1"})

	var fe domain.FieldErrors
	assert.ErrorAs(t, err, &fe)
}

func TestRegister_EmailTaken(t *testing.T) {
	uc, d := newUseCase(t)
	d.users.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(&domain.User{ID: "other"}, nil)

	_, _, err := uc.Register(context.Background(), domain.RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "password1"})

	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLogin(t *testing.T) {
	uc, d := newUseCase(t)
	u := existingUser(t, d.hasher, "password1")
	d.users.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(u, nil)

	user, pair, err := uc.Login(context.Background(), " ANA@example.com", "password1")

	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, d := newUseCase(t)
	d.users.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(existingUser(t, d.hasher, "password1"), nil)

	_, _, err := uc.Login(context.Background(), "ana@example.com", "password2")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, d := newUseCase(t)
	d.users.EXPECT().GetUserByEmail(gomock.Any(), "nobody@example.com").Return(nil, domain.ErrUserNotFound)

	_, _, err := uc.Login(context.Background(), "nobody@example.com", "password1")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_EmptyFields(t *testing.T) {
	uc, _ := newUseCase(t)

	_, _, err := uc.Login(context.Background(), " ", "")

	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe, 2)
}

func TestAuthenticate(t *testing.T) {
	uc, d := newUseCase(t)
	access, err := d.tokens.IssueAccess("user-1", "ana@example.com", "sess-1")
	require.NoError(t, err)
	d.store.EXPECT().IsRevoked(gomock.Any(), access.ID, "session:sess-1").Return(false, nil)

	claims, err := uc.Authenticate(context.Background(), access.Value)

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, access.ID, claims.TokenID)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.WithinDuration(t, access.ExpiresAt, claims.ExpiresAt, time.Second)
}

func TestAuthenticate_Revoked(t *testing.T) {
	uc, d := newUseCase(t)
	access, err := d.tokens.IssueAccess("user-1", "ana@example.com", "sess-1")
	require.NoError(t, err)
	d.store.EXPECT().IsRevoked(gomock.Any(), access.ID, "session:sess-1").Return(true, nil)

	_, err = uc.Authenticate(context.Background(), access.Value)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	uc, d := newUseCase(t)
	refresh, err := d.tokens.IssueRefresh("user-1", "ana@example.com", "sess-1")
	require.NoError(t, err)

	_, err = uc.Authenticate(context.Background(), refresh.Value)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_StoreError(t *testing.T) {
	uc, d := newUseCase(t)
	access, err := d.tokens.IssueAccess("user-1", "ana@example.com", "sess-1")
	require.NoError(t, err)
	storeErr := errors.New("redis down")
	d.store.EXPECT().IsRevoked(gomock.Any(), access.ID, "session:sess-1").Return(false, storeErr)

	_, err = uc.Authenticate(context.Background(), access.Value)

	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh(t *testing.T) {
	uc, d := newUseCase(t)
	refresh, err := d.tokens.IssueRefresh("user-1", "ana@example.com", "sess-1")
	require.NoError(t, err)

	gomock.InOrder(
		d.store.EXPECT().IsRevoked(gomock.Any(), refresh.ID, "session:sess-1").Return(false, nil),
		d.users.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(&domain.User{ID: "user-1", Email: "ana@example.com"}, nil),
		d.store.EXPECT().Revoke(gomock.Any(), refresh.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
				assert.Greater(t, ttl, 59*time.Minute)
				assert.LessOrEqual(t, ttl, time.Hour)
				return nil
			}),
	)

	pair, err := uc.Refresh(context.Background(), refresh.Value)

	require.NoError(t, err)
	assert.NotEqual(t, refresh.Value, pair.RefreshToken)
	next, err := d.tokens.ValidateRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", next.SessionID, "ротация сохраняет сессию")
}

func TestRefresh_Revoked(t *testing.T) {
	uc, d := newUseCase(t)
	refresh, err := d.tokens.IssueRefresh("user-1", "ana@example.com", "sess-1")
	require.NoError(t, err)
	d.store.EXPECT().IsRevoked(gomock.Any(), refresh.ID, "session:sess-1").Return(true, nil)

	_, err = uc.Refresh(context.Background(), refresh.Value)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_UserDeleted(t *testing.T) {
	uc, d := newUseCase(t)
	refresh, err := d.tokens.IssueRefresh("user-1", "ana@example.com", "sess-1")
	require.NoError(t, err)
	d.store.EXPECT().IsRevoked(gomock.Any(), refresh.ID, "session:sess-1").Return(false, nil)
	d.users.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(nil, domain.ErrUserNotFound)

	_, err = uc.Refresh(context.Background(), refresh.Value)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	uc, d := newUseCase(t)
	claims := domain.Claims{UserID: "user-1", TokenID: "jti-1", SessionID: "sess-1", ExpiresAt: time.Now().Add(10 * time.Minute)}
	d.store.EXPECT().Revoke(gomock.Any(), "session:sess-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
			assert.Greater(t, ttl, 59*time.Minute, "сессия живёт не меньше refresh-токена")
			assert.LessOrEqual(t, ttl, time.Hour)
			return nil
		})

	assert.NoError(t, uc.Logout(context.Background(), claims))
}

func TestLogout_StoreError(t *testing.T) {
	uc, d := newUseCase(t)
	storeErr := errors.New("redis down")
	d.store.EXPECT().Revoke(gomock.Any(), "session:sess-1", gomock.Any()).Return(storeErr)

	err := uc.Logout(context.Background(), domain.Claims{UserID: "user-1", SessionID: "sess-1"})

	assert.ErrorIs(t, err, storeErr)
}

func TestUpdateProfile(t *testing.T) {
	uc, d := newUseCase(t)
	name, email := "Bob", "BOB@example.com"

	d.users.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(&domain.User{ID: "user-1", Name: "Ana", Email: "ana@example.com"}, nil)
	d.users.EXPECT().GetUserByEmail(gomock.Any(), "bob@example.com").Return(nil, domain.ErrUserNotFound)
	d.users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

	user, err := uc.UpdateProfile(context.Background(), "user-1", domain.UpdateProfileInput{Name: &name, Email: &email})

	require.NoError(t, err)
	assert.Equal(t, "Bob", user.Name)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.False(t, user.UpdatedAt.IsZero())
}

func TestUpdateProfile_SameEmail(t *testing.T) {
	uc, d := newUseCase(t)
	email := "ana@example.com"

	d.users.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(&domain.User{ID: "user-1", Email: "ana@example.com"}, nil)
	d.users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

	_, err := uc.UpdateProfile(context.Background(), "user-1", domain.UpdateProfileInput{Email: &email})

	assert.NoError(t, err)
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	uc, d := newUseCase(t)
	email := "taken@example.com"

	d.users.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(&domain.User{ID: "user-1", Email: "ana@example.com"}, nil)
	d.users.EXPECT().GetUserByEmail(gomock.Any(), "taken@example.com").Return(&domain.User{ID: "user-2"}, nil)

	_, err := uc.UpdateProfile(context.Background(), "user-1", domain.UpdateProfileInput{Email: &email})

	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestDeleteAccount(t *testing.T) {
	uc, d := newUseCase(t)
	claims := domain.Claims{UserID: "user-1", TokenID: "jti-1", SessionID: "sess-1", ExpiresAt: time.Now().Add(5 * time.Minute)}

	gomock.InOrder(
		d.ops.EXPECT().ClearHistory(gomock.Any(), "user-1").Return(int64(2), nil),
		d.users.EXPECT().DeleteUser(gomock.Any(), "user-1").Return(nil),
		d.store.EXPECT().Revoke(gomock.Any(), "session:sess-1", gomock.Any()).Return(nil),
	)

	assert.NoError(t, uc.DeleteAccount(context.Background(), claims))
}

func TestDeleteAccount_ClearFails(t *testing.T) {
	uc, d := newUseCase(t)
	dbErr := errors.New("db down")
	d.ops.EXPECT().ClearHistory(gomock.Any(), "user-1").Return(int64(0), dbErr)

	err := uc.DeleteAccount(context.Background(), domain.Claims{UserID: "user-1"})

	assert.ErrorIs(t, err, dbErr)
}
