package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"exprCalc/internal/domain"
)

// ICalculatorUseCase — контракт бизнес-логики калькулятора (вычисление, история, статистика, события из Kafka).
type ICalculatorUseCase interface {
	Calculate(ctx context.Context, userID, expression string) (*domain.Operation, error)
	History(ctx context.Context, userID string) ([]domain.Operation, error)
	ClearHistory(ctx context.Context, userID string) (int64, error)
	Stats(ctx context.Context, userID string) (*domain.Stats, error)
	HandleOperationEvent(ctx context.Context, op domain.Operation) error
}

// IAuthUseCase — контракт регистрации, входа и управления аккаунтом.
type IAuthUseCase interface {
	Register(ctx context.Context, in domain.RegisterInput) (*domain.User, *domain.TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, claims domain.Claims) error
	Authenticate(ctx context.Context, accessToken string) (*domain.Claims, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in domain.UpdateProfileInput) (*domain.User, error)
	DeleteAccount(ctx context.Context, claims domain.Claims) error
}
