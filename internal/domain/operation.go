package domain

import (
	"strings"
	"time"
)

// OperationKind — тип операции, выведенный из операторов выражения.
type OperationKind string

// Типы операций.
const (
	KindAdd      OperationKind = "add"
	KindSubtract OperationKind = "subtract"
	KindMultiply OperationKind = "multiply"
	KindDivide   OperationKind = "divide"
	KindMixed    OperationKind = "mixed"
)

// Kinds — все типы операций (для статистики с нулевыми счётчиками).
var Kinds = []OperationKind{KindAdd, KindSubtract, KindMultiply, KindDivide, KindMixed}

var operatorKinds = map[rune]OperationKind{
	'+': KindAdd,
	'-': KindSubtract,
	'*': KindMultiply,
	'/': KindDivide,
}

// KindOf определяет тип операции по набору различных операторов в выражении:
// ровно один тип — он и есть; ни одного или несколько — mixed.
func KindOf(expression string) OperationKind {
	seen := make(map[OperationKind]struct{}, 4)
	for _, r := range expression {
		if k, ok := operatorKinds[r]; ok {
			seen[k] = struct{}{}
		}
	}
	if len(seen) != 1 {
		return KindMixed
	}
	for k := range seen {
		return k
	}
	return KindMixed
}

// Valid сообщает, что тип входит в Kinds.
func (k OperationKind) Valid() bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

// Operation — запись об одном успешном вычислении, принадлежит пользователю.
// Kind вычисляется один раз при создании и больше не пересчитывается.
type Operation struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	Expression string        `json:"expression"`
	Result     string        `json:"result"`
	Kind       OperationKind `json:"kind"`
	Timestamp  time.Time     `json:"timestamp"`
}

// NewOperation собирает запись: выражение обрезается по краям, Kind выводится из него.
func NewOperation(id, userID, expression, result string, at time.Time) Operation {
	expression = strings.TrimSpace(expression)
	return Operation{
		ID:         id,
		UserID:     userID,
		Expression: expression,
		Result:     result,
		Kind:       KindOf(expression),
		Timestamp:  at,
	}
}

// KindCount — число операций одного типа.
type KindCount struct {
	Kind  OperationKind `json:"kind"`
	Count int64         `json:"count"`
}

// Stats — агрегаты по истории пользователя.
type Stats struct {
	Total       int64
	Today       int64
	Week        int64
	ByKind      []KindCount
	MemberSince time.Time
}
