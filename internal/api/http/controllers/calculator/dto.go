package calculator

import (
	"encoding/json"
	"time"

	"exprCalc/internal/domain"
)

// CalculateRequest — тело POST /api/v1/operations/calculate.
type CalculateRequest struct {
	Expression string `json:"expression"`
}

// OperationResponse — одна операция пользователя.
type OperationResponse struct {
	ID         string               `json:"id"`
	Expression string               `json:"expression"`
	Result     json.RawMessage      `json:"result" swaggertype:"number"`
	Kind       domain.OperationKind `json:"kind"`
	CreatedAt  time.Time            `json:"created_at"`
}

// HistoryResponse — история операций, новые первыми.
type HistoryResponse struct {
	Count int                 `json:"count"`
	Items []OperationResponse `json:"items"`
}

// ClearResponse — результат очистки истории.
type ClearResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// StatsResponse — статистика пользователя.
type StatsResponse struct {
	Total       int64              `json:"total"`
	Today       int64              `json:"today"`
	Week        int64              `json:"week"`
	ByKind      []domain.KindCount `json:"by_kind"`
	MemberSince time.Time          `json:"member_since"`
}

func toOperationResponse(op domain.Operation) OperationResponse {
	return OperationResponse{
		ID:         op.ID,
		Expression: op.Expression,
		Result:     resultJSON(op.Result),
		Kind:       op.Kind,
		CreatedAt:  op.Timestamp,
	}
}

// resultJSON отдаёт результат JSON-числом (20, 0.3333333333). Запись, которая числом не является,
// уходит строкой, чтобы ответ оставался валидным JSON.
func resultJSON(s string) json.RawMessage {
	if s != "" && (s[0] == '-' || s[0] >= '0' && s[0] <= '9') && json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	b, _ := json.Marshal(s)
	return b
}
