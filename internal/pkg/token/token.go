// Package token выпускает и проверяет JWT (HS256): короткоживущий access и долгоживущий refresh.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken — подпись, формат или тип токена не те.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken — токен просрочен.
	ErrExpiredToken = errors.New("token has expired")
)

// Типы токенов.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// MinSecretLen — минимальная длина секрета HS256 в байтах.
const MinSecretLen = 32

// Config — настройки JWT (префикс CALCULATOR_JWT). Секрет обязателен, значения по умолчанию нет.
type Config struct {
	Secret     string        `envconfig:"SECRET" required:"true"`
	AccessTTL  time.Duration `envconfig:"ACCESS_TTL" default:"15m"`
	RefreshTTL time.Duration `envconfig:"REFRESH_TTL" default:"168h"`
	Issuer     string        `envconfig:"ISSUER" default:"exprCalc"`
}

// Claims — полезная нагрузка токена.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	// SessionID общий у access и refresh одного входа; отзыв сессии гасит оба.
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Token — подписанный токен и его идентификатор (jti) со сроком жизни.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Manager подписывает и проверяет токены одним секретом.
type Manager struct {
	cfg Config
	now func() time.Time
}

// New создаёт менеджер токенов.
func New(cfg Config) *Manager {
	return &Manager{cfg: cfg, now: time.Now}
}

// AccessTTL — время жизни access-токена.
func (m *Manager) AccessTTL() time.Duration {
	return m.cfg.AccessTTL
}

// RefreshTTL — время жизни refresh-токена, а значит и сессии.
func (m *Manager) RefreshTTL() time.Duration {
	return m.cfg.RefreshTTL
}

// IssueAccess выпускает access-токен сессии sessionID.
func (m *Manager) IssueAccess(userID, email, sessionID string) (Token, error) {
	return m.issue(userID, email, sessionID, TypeAccess, m.cfg.AccessTTL)
}

// IssueRefresh выпускает refresh-токен сессии sessionID.
func (m *Manager) IssueRefresh(userID, email, sessionID string) (Token, error) {
	return m.issue(userID, email, sessionID, TypeRefresh, m.cfg.RefreshTTL)
}

func (m *Manager) issue(userID, email, sessionID, tokenType string, ttl time.Duration) (Token, error) {
	now := m.now()
	exp := now.Add(ttl)
	id := uuid.NewString()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    m.cfg.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ID: id, ExpiresAt: exp}, nil
}

// ValidateAccess проверяет access-токен.
func (m *Manager) ValidateAccess(s string) (*Claims, error) {
	return m.validate(s, TypeAccess)
}

// ValidateRefresh проверяет refresh-токен.
func (m *Manager) ValidateRefresh(s string) (*Claims, error) {
	return m.validate(s, TypeRefresh)
}

func (m *Manager) validate(s, tokenType string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(s, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.cfg.Secret), nil
	}, jwt.WithTimeFunc(m.now), jwt.WithIssuer(m.cfg.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tok.Valid || claims.TokenType != tokenType || claims.ID == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
