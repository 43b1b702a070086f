package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"exprCalc/internal/domain"
)

const tokenTypeBearer = "Bearer"

// sessionKey — ключ сессии в стоп-листе; не пересекается с jti (uuid).
func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Register создаёт пользователя и сразу выдаёт пару токенов.
func (u *UseCase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, *domain.TokenPair, error) {
	in, err := validateRegister(in)
	if err != nil {
		return nil, nil, err
	}
	if err := u.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	now := u.now()
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}
	u.log.Info("user registered", "user_id", user.ID)

	pair, err := u.issuePair(user, uuid.NewString())
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

// Login проверяет email и пароль. Неизвестный email и неверный пароль неразличимы снаружи.
func (u *UseCase) Login(ctx context.Context, email, pw string) (*domain.User, *domain.TokenPair, error) {
	errs := domain.FieldErrors{}
	email = normalizeEmail(email)
	if email == "" {
		errs[fieldEmail] = "email must not be empty"
	}
	if pw == "" {
		errs[fieldPassword] = "password must not be empty"
	}
	if err := errs.Err(); err != nil {
		return nil, nil, err
	}

	user, err := u.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}
	if !u.hasher.Verify(pw, user.PasswordHash) {
		u.log.Warn("login failed", "user_id", user.ID)
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := u.issuePair(*user, uuid.NewString())
	if err != nil {
		return nil, nil, err
	}
	u.log.Info("user logged in", "user_id", user.ID)
	return user, pair, nil
}

// Refresh меняет refresh-токен на новую пару той же сессии; старый refresh отзывается.
func (u *UseCase) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := u.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if err := u.checkRevoked(ctx, claims.ID, claims.SessionID); err != nil {
		return nil, err
	}
	user, err := u.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if err := u.revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return nil, err
	}
	return u.issuePair(*user, claims.SessionID)
}

// Logout отзывает сессию целиком: и access, и refresh этого входа.
func (u *UseCase) Logout(ctx context.Context, claims domain.Claims) error {
	if err := u.revokeSession(ctx, claims.SessionID); err != nil {
		return err
	}
	u.log.Info("user logged out", "user_id", claims.UserID)
	return nil
}

// Authenticate проверяет подпись, срок, тип и отзыв access-токена и его сессии.
func (u *UseCase) Authenticate(ctx context.Context, accessToken string) (*domain.Claims, error) {
	claims, err := u.tokens.ValidateAccess(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if err := u.checkRevoked(ctx, claims.ID, claims.SessionID); err != nil {
		return nil, err
	}
	return &domain.Claims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		TokenID:   claims.ID,
		SessionID: claims.SessionID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Profile возвращает пользователя по ID.
func (u *UseCase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return u.users.GetUserByID(ctx, userID)
}

// UpdateProfile меняет имя и/или email. Новый email должен быть свободен.
func (u *UseCase) UpdateProfile(ctx context.Context, userID string, in domain.UpdateProfileInput) (*domain.User, error) {
	in, err := validateUpdate(in)
	if err != nil {
		return nil, err
	}
	user, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil && *in.Email != user.Email {
		if err := u.ensureEmailFree(ctx, *in.Email); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	user.UpdatedAt = u.now()
	if err := u.users.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	u.log.Info("profile updated", "user_id", userID)
	return user, nil
}

// DeleteAccount удаляет историю, самого пользователя и отзывает текущую сессию.
func (u *UseCase) DeleteAccount(ctx context.Context, claims domain.Claims) error {
	if _, err := u.ops.ClearHistory(ctx, claims.UserID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	if err := u.users.DeleteUser(ctx, claims.UserID); err != nil {
		return err
	}
	if err := u.revokeSession(ctx, claims.SessionID); err != nil {
		return err
	}
	u.log.Info("account deleted", "user_id", claims.UserID)
	return nil
}

func (u *UseCase) ensureEmailFree(ctx context.Context, email string) error {
	_, err := u.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrUserExists
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

func (u *UseCase) checkRevoked(ctx context.Context, tokenID, sessionID string) error {
	revoked, err := u.store.IsRevoked(ctx, tokenID, sessionKey(sessionID))
	if err != nil {
		return fmt.Errorf("token store: %w", err)
	}
	if revoked {
		return fmt.Errorf("%w: token revoked", domain.ErrUnauthorized)
	}
	return nil
}

// revoke кладёт jti в стоп-лист на оставшееся время жизни токена.
func (u *UseCase) revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(u.now())
	if ttl <= 0 {
		return nil
	}
	if err := u.store.Revoke(ctx, tokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// revokeSession отзывает сессию на RefreshTTL: дольше не живёт ни один её токен,
// так как каждая ротация выпускает refresh не позже now+RefreshTTL.
func (u *UseCase) revokeSession(ctx context.Context, sessionID string) error {
	return u.revoke(ctx, sessionKey(sessionID), u.now().Add(u.tokens.RefreshTTL()))
}

func (u *UseCase) issuePair(user domain.User, sessionID string) (*domain.TokenPair, error) {
	access, err := u.tokens.IssueAccess(user.ID, user.Email, sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := u.tokens.IssueRefresh(user.ID, user.Email, sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &domain.TokenPair{
		AccessToken:  access.Value,
		RefreshToken: refresh.Value,
		ExpiresIn:    int64(u.tokens.AccessTTL().Seconds()),
		TokenType:    tokenTypeBearer,
	}, nil
}
