package redis

import (
	"context"
	"log/slog"
	"time"

	"exprCalc/internal/ports"
)

var _ ports.ITokenStore = (*TokenStore)(nil)

// keyPrefix — пространство ключей отозванных идентификаторов.
const keyPrefix = "revoked:"

// TokenStore реализует ports.ITokenStore через Redis: ключ revoked:<id> живёт ttl.
type TokenStore struct {
	cli *Client
	log *slog.Logger
}

// NewTokenStore возвращает стоп-лист токенов и сессий.
func NewTokenStore(cli *Client, log *slog.Logger) *TokenStore {
	return &TokenStore{cli: cli, log: log}
}

func key(id string) string {
	return keyPrefix + id
}

// Revoke помечает идентификатор отозванным на ttl.
func (s *TokenStore) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.cli.Set(ctx, key(id), 1, ttl).Err(); err != nil {
		s.log.Debug("token revoke failed", "error", err)
		return err
	}
	return nil
}

// IsRevoked проверяет все ids одним EXISTS.
func (s *TokenStore) IsRevoked(ctx context.Context, ids ...string) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}
	n, err := s.cli.Exists(ctx, keys...).Result()
	if err != nil {
		s.log.Debug("token lookup failed", "error", err)
		return false, err
	}
	return n > 0, nil
}
