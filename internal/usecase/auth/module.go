package auth

import (
	"log/slog"
	"time"

	"exprCalc/internal/pkg/password"
	"exprCalc/internal/pkg/token"
	"exprCalc/internal/ports"
)

// UseCase — регистрация, вход, выпуск и отзыв токенов, профиль пользователя.
type UseCase struct {
	users  ports.IUserRepository
	ops    ports.IOperationRepository
	store  ports.ITokenStore
	tokens *token.Manager
	hasher *password.Hasher
	log    *slog.Logger
	now    func() time.Time
}

// New создаёт юзкейс авторизации.
func New(users ports.IUserRepository, ops ports.IOperationRepository, store ports.ITokenStore, tokens *token.Manager, hasher *password.Hasher, log *slog.Logger) *UseCase {
	return &UseCase{
		users:  users,
		ops:    ops,
		store:  store,
		tokens: tokens,
		hasher: hasher,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}
