package ports

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"exprCalc/internal/domain"
)

// IOperationRepository — контракт сохранения и чтения истории операций пользователя.
type IOperationRepository interface {
	SaveOperation(ctx context.Context, op domain.Operation) error
	// GetHistory возвращает операции пользователя, последние сначала.
	GetHistory(ctx context.Context, userID string) ([]domain.Operation, error)
	// ClearHistory удаляет все операции пользователя и возвращает их число.
	ClearHistory(ctx context.Context, userID string) (int64, error)
	// Stats считает операции: всего, с момента today, с момента weekAgo и по типам.
	Stats(ctx context.Context, userID string, today, weekAgo time.Time) (domain.Stats, error)
	Ping(ctx context.Context) error
}

// IUserRepository — контракт хранения пользователей.
type IUserRepository interface {
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) error
	DeleteUser(ctx context.Context, id string) error
}
