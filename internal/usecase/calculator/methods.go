package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"exprCalc/internal/domain"
	"exprCalc/internal/evaluator"
)

// Calculate — вычисляет выражение, сохраняет операцию в БД и публикует событие в брокер.
// Ошибка вычислителя возвращается как есть (*evaluator.Error), при этом ничего не сохраняется.
func (u *UseCase) Calculate(ctx context.Context, userID, expression string) (*domain.Operation, error) {
	result, err := evaluator.Evaluate(expression)
	if err != nil {
		if kind, ok := evaluator.KindOf(err); ok {
			evaluationsTotal.WithLabelValues(string(kind)).Inc()
		}
		return nil, err
	}
	evaluationsTotal.WithLabelValues(outcomeOK).Inc()

	op := domain.NewOperation(uuid.NewString(), userID, expression, result.String(), u.now())
	if err := u.repo.SaveOperation(ctx, op); err != nil {
		return nil, fmt.Errorf("save operation: %w", err)
	}
	u.log.Info("operation saved", "user_id", userID, "kind", op.Kind, "result", op.Result)

	u.publish(ctx, op)
	return &op, nil
}

// publish отправляет операцию в брокер; ошибка только логируется.
func (u *UseCase) publish(ctx context.Context, op domain.Operation) {
	if u.broker == nil {
		return
	}
	value, err := json.Marshal(op)
	if err != nil {
		u.log.Warn("marshal operation", "error", err)
		return
	}
	if err := u.broker.Send(ctx, []byte(op.UserID), value); err != nil {
		u.log.Warn("broker send", "operation_id", op.ID, "error", err)
		return
	}
	u.log.Debug("operation published", "operation_id", op.ID)
}

// History — история операций пользователя, новые первыми.
func (u *UseCase) History(ctx context.Context, userID string) ([]domain.Operation, error) {
	return u.repo.GetHistory(ctx, userID)
}

// ClearHistory удаляет всю историю пользователя и возвращает число удалённых записей.
func (u *UseCase) ClearHistory(ctx context.Context, userID string) (int64, error) {
	n, err := u.repo.ClearHistory(ctx, userID)
	if err != nil {
		return 0, err
	}
	u.log.Info("history cleared", "user_id", userID, "deleted", n)
	return n, nil
}

// Stats — агрегаты по истории: всего, за сегодня (с 00:00 UTC), за неделю, по типам.
func (u *UseCase) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	user, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := startOfDay(u.now())
	st, err := u.repo.Stats(ctx, userID, today, today.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	st.ByKind = fillKinds(st.ByKind)
	st.MemberSince = user.CreatedAt
	return &st, nil
}

// fillKinds раскладывает счётчики в порядке domain.Kinds, отсутствующие типы — с нулём.
func fillKinds(counts []domain.KindCount) []domain.KindCount {
	byKind := make(map[domain.OperationKind]int64, len(counts))
	for _, c := range counts {
		byKind[c.Kind] += c.Count
	}
	out := make([]domain.KindCount, len(domain.Kinds))
	for i, k := range domain.Kinds {
		out[i] = domain.KindCount{Kind: k, Count: byKind[k]}
	}
	return out
}

// HandleOperationEvent вызывается консьюмером при получении сообщения из топика operations.
func (u *UseCase) HandleOperationEvent(ctx context.Context, op domain.Operation) error {
	if u.analytics == nil {
		return errors.New("analytics is not configured")
	}
	if err := u.analytics.WriteOperation(ctx, op); err != nil {
		u.log.Warn("analytics write", "operation_id", op.ID, "error", err)
		return err
	}
	u.log.Info("operation stored to click", "operation_id", op.ID, "kind", op.Kind, "result", op.Result)
	return nil
}
