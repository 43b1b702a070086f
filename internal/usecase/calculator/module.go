package calculator

import (
	"log/slog"
	"time"

	"exprCalc/internal/ports"
)

// UseCase — бизнес-логика калькулятора: вычисление, история, статистика.
type UseCase struct {
	repo      ports.IOperationRepository
	users     ports.IUserRepository
	broker    ports.IProducer
	analytics ports.IOperationAnalytics
	log       *slog.Logger
	now       func() time.Time
}

// New создаёт юзкейс калькулятора. broker и analytics могут быть nil (Kafka выключена).
func New(repo ports.IOperationRepository, users ports.IUserRepository, broker ports.IProducer, analytics ports.IOperationAnalytics, log *slog.Logger) *UseCase {
	return &UseCase{
		repo:      repo,
		users:     users,
		broker:    broker,
		analytics: analytics,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// startOfDay — полночь UTC того же дня.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
