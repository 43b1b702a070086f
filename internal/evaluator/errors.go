package evaluator

import "errors"

// Kind — стабильный идентификатор категории ошибки. Вызывающий слой по нему выбирает HTTP-статус и текст для пользователя.
type Kind string

// Категории ошибок валидации и вычисления.
const (
	EmptyExpression           Kind = "EmptyExpression"
	TooLong                   Kind = "TooLong"
	InvalidCharacters         Kind = "InvalidCharacters"
	UnbalancedParentheses     Kind = "UnbalancedParentheses"
	NoOperand                 Kind = "NoOperand"
	NoOperator                Kind = "NoOperator"
	ConsecutiveOperators      Kind = "ConsecutiveOperators"
	LeadingOrTrailingOperator Kind = "LeadingOrTrailingOperator"
	DivisionByZeroLiteral     Kind = "DivisionByZeroLiteral"
	RuntimeDivisionByZero     Kind = "RuntimeDivisionByZero"
	MalformedExpression       Kind = "MalformedExpression"
	ResultOverflow            Kind = "ResultOverflow"
)

// Kinds — все категории в порядке стадий конвейера.
var Kinds = []Kind{
	EmptyExpression,
	TooLong,
	InvalidCharacters,
	UnbalancedParentheses,
	NoOperand,
	NoOperator,
	ConsecutiveOperators,
	LeadingOrTrailingOperator,
	DivisionByZeroLiteral,
	RuntimeDivisionByZero,
	MalformedExpression,
	ResultOverflow,
}

var messages = map[Kind]string{
	EmptyExpression:           "expression must not be empty",
	TooLong:                   "expression is too long, maximum is 500 characters",
	InvalidCharacters:         "expression contains invalid characters, use only digits, + - * / and parentheses",
	UnbalancedParentheses:     "parentheses are not balanced",
	NoOperand:                 "expression must contain at least one number",
	NoOperator:                "expression must contain at least one operator (+, -, *, /)",
	ConsecutiveOperators:      "consecutive operators are not allowed",
	LeadingOrTrailingOperator: "expression must not start or end with an operator",
	DivisionByZeroLiteral:     "division by zero is not allowed",
	RuntimeDivisionByZero:     "division by zero is not allowed",
	MalformedExpression:       "invalid mathematical expression",
	ResultOverflow:            "result is too large",
}

// Error — классифицированная ошибка вычисления. Pos — позиция (в рунах, с 1) в строке без пробелов, 0 если неизвестна.
type Error struct {
	Kind    Kind
	Message string
	Pos     int
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Is позволяет сравнивать ошибки по категории: errors.Is(err, &Error{Kind: TooLong}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, pos int) *Error {
	return &Error{Kind: kind, Message: messages[kind], Pos: pos}
}

// KindOf возвращает категорию ошибки вычислителя; ok == false, если err не из этого пакета.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
