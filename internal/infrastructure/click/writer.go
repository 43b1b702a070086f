package click

import (
	"context"
	"fmt"
	"strconv"

	"exprCalc/internal/domain"
	"exprCalc/internal/ports"
)

var _ ports.IOperationAnalytics = (*OperationWriter)(nil)

// OperationWriter пишет операции в ClickHouse для аналитики (GROUP BY kind, по времени и т.д.).
type OperationWriter struct {
	db *Client
}

// NewOperationWriter создаёт писатель операций для аналитики.
func NewOperationWriter(db *Client) *OperationWriter {
	return &OperationWriter{db: db}
}

// EnsureTable создаёт таблицу аналитики, если её ещё нет. ReplacingMergeTree по id схлопывает
// повторные доставки одного события.
func (w *OperationWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id String,
			user_id String,
			expression String,
			result String,
			result_value Float64,
			kind LowCardinality(String),
			created_at DateTime64(3, 'UTC')
		) ENGINE = ReplacingMergeTree()
		ORDER BY (kind, created_at, id)
		PARTITION BY toYYYYMM(created_at)`,
		w.db.table(),
	)
	_, err := w.db.DB().ExecContext(ctx, query)
	return err
}

// WriteOperation пишет одну операцию в ClickHouse.
func (w *OperationWriter) WriteOperation(ctx context.Context, op domain.Operation) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (id, user_id, expression, result, result_value, kind, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		w.db.table(),
	)
	_, err := w.db.DB().ExecContext(ctx, query,
		op.ID, op.UserID, op.Expression, op.Result, resultValue(op.Result), string(op.Kind), op.Timestamp)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// resultValue — числовое значение результата; нечисловой текст даёт 0.
func resultValue(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
