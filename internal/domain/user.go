package domain

import "time"

// User — зарегистрированный пользователь. Email уникален и хранится в нижнем регистре.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenPair — пара access/refresh токенов.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Claims — проверенные данные access-токена, живут в контексте запроса.
type Claims struct {
	UserID    string
	Email     string
	TokenID   string
	SessionID string
	ExpiresAt time.Time
}

// RegisterInput — данные регистрации. ConfirmPassword необязателен.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// UpdateProfileInput — частичное обновление профиля: nil-поля не меняются.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}
