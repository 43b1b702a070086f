package calculator

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"exprCalc/internal/api/authctx"
	"exprCalc/internal/domain"
	"exprCalc/internal/evaluator"
	"exprCalc/internal/ports"
)

// Server реализует CalculatorServiceServer поверх use case калькулятора.
// Пользователь берётся из контекста: его кладёт auth-интерцептор.
type Server struct {
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт gRPC-сервер калькулятора.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{uc: uc, log: log}
}

// Calculate вызывает use case и возвращает операцию или gRPC-ошибку.
func (s *Server) Calculate(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	claims, ok := authctx.FromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	op, err := s.uc.Calculate(ctx, claims.UserID, req.GetValue())
	if err != nil {
		return nil, s.toStatus("calculate", err)
	}
	return structpb.NewStruct(operationFields(*op))
}

// History возвращает историю операций пользователя.
func (s *Server) History(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	claims, ok := authctx.FromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	list, err := s.uc.History(ctx, claims.UserID)
	if err != nil {
		return nil, s.toStatus("history", err)
	}
	items := make([]any, len(list))
	for i, op := range list {
		items[i] = operationFields(op)
	}
	return structpb.NewList(items)
}

// Stats возвращает статистику пользователя.
func (s *Server) Stats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	claims, ok := authctx.FromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	st, err := s.uc.Stats(ctx, claims.UserID)
	if err != nil {
		return nil, s.toStatus("stats", err)
	}
	byKind := make([]any, len(st.ByKind))
	for i, kc := range st.ByKind {
		byKind[i] = map[string]any{"kind": string(kc.Kind), "count": kc.Count}
	}
	return structpb.NewStruct(map[string]any{
		"total":        st.Total,
		"today":        st.Today,
		"week":         st.Week,
		"by_kind":      byKind,
		"member_since": st.MemberSince.UTC().Format(time.RFC3339),
	})
}

func operationFields(op domain.Operation) map[string]any {
	return map[string]any{
		"id":         op.ID,
		"expression": op.Expression,
		"result":     resultValue(op.Result),
		"kind":       string(op.Kind),
		"created_at": op.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

// resultValue отдаёт результат числом Struct; нечисловая запись остаётся строкой.
func resultValue(s string) any {
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return v
	}
	return s
}

// toStatus переводит ошибку use case в gRPC-статус. Сообщение ошибки вычислителя начинается с её вида.
func (s *Server) toStatus(op string, err error) error {
	var evalErr *evaluator.Error
	switch {
	case errors.As(err, &evalErr):
		return status.Error(codes.InvalidArgument, evalErr.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "authentication required")
	case errors.Is(err, domain.ErrUserNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	s.log.Error(op+" failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}
