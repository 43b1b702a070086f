package ports

//go:generate mockgen -source=tokens.go -destination=../mocks/tokens_mock.go -package=mocks

import (
	"context"
	"time"
)

// ITokenStore — контракт списка отозванных идентификаторов: jti токена (ротация refresh)
// или сессии (logout, удаление аккаунта). Запись живёт ttl.
type ITokenStore interface {
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	// IsRevoked сообщает, отозван ли хотя бы один из ids.
	IsRevoked(ctx context.Context, ids ...string) (bool, error)
}
