package pg

import (
	"context"
	"log/slog"
	"time"

	"exprCalc/internal/domain"
	"exprCalc/internal/ports"
)

var _ ports.IOperationRepository = (*OperationRepo)(nil)

// OperationRepo реализует ports.IOperationRepository для PostgreSQL.
type OperationRepo struct {
	db  *DB
	log *slog.Logger
}

// NewOperationRepo возвращает репозиторий операций.
func NewOperationRepo(db *DB, log *slog.Logger) *OperationRepo {
	return &OperationRepo{db: db, log: log}
}

// SaveOperation сохраняет операцию в БД.
func (r *OperationRepo) SaveOperation(ctx context.Context, op domain.Operation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO operations (id, user_id, expression, result, kind, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		op.ID, op.UserID, op.Expression, op.Result, string(op.Kind), op.Timestamp)
	if err != nil {
		r.log.Debug("SaveOperation failed", "error", err)
		return err
	}
	return nil
}

// GetHistory возвращает историю операций пользователя (последние сначала).
func (r *OperationRepo) GetHistory(ctx context.Context, userID string) ([]domain.Operation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, expression, result, kind, created_at
		 FROM operations WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		r.log.Debug("GetHistory failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	list := make([]domain.Operation, 0)
	for rows.Next() {
		var op domain.Operation
		var kind string
		if err := rows.Scan(&op.ID, &op.UserID, &op.Expression, &op.Result, &kind, &op.Timestamp); err != nil {
			return nil, err
		}
		op.Kind = domain.OperationKind(kind)
		op.Timestamp = op.Timestamp.UTC()
		list = append(list, op)
	}
	return list, rows.Err()
}

// ClearHistory удаляет все операции пользователя.
func (r *OperationRepo) ClearHistory(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM operations WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Debug("ClearHistory failed", "error", err)
		return 0, err
	}
	return res.RowsAffected()
}

// Stats считает агрегаты по истории пользователя одним проходом и разбивку по типам вторым запросом.
func (r *OperationRepo) Stats(ctx context.Context, userID string, today, weekAgo time.Time) (domain.Stats, error) {
	var st domain.Stats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE created_at >= $2),
		        COUNT(*) FILTER (WHERE created_at >= $3)
		 FROM operations WHERE user_id = $1`, userID, today, weekAgo).
		Scan(&st.Total, &st.Today, &st.Week)
	if err != nil {
		r.log.Debug("Stats totals failed", "error", err)
		return domain.Stats{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM operations WHERE user_id = $1 GROUP BY kind ORDER BY kind`, userID)
	if err != nil {
		r.log.Debug("Stats by kind failed", "error", err)
		return domain.Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var kc domain.KindCount
		var kind string
		if err := rows.Scan(&kind, &kc.Count); err != nil {
			return domain.Stats{}, err
		}
		kc.Kind = domain.OperationKind(kind)
		st.ByKind = append(st.ByKind, kc)
	}
	return st, rows.Err()
}

// Ping проверяет доступность БД (readiness).
func (r *OperationRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
