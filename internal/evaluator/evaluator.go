// Package evaluator — безопасный вычислитель арифметических выражений.
//
// Выражение — инфиксная запись над десятичными числами с операторами + - * / и скобками.
// Строка никогда не исполняется как код: её разбирает рекурсивный спуск по закрытой грамматике
// (см. parse.go). Все функции пакета чистые и безопасны для конкурентного вызова.
package evaluator

import "strings"

// Evaluate проверяет выражение публичным валидатором и вычисляет его.
// Ошибка всегда имеет тип *Error.
func Evaluate(input string) (Number, error) {
	s, err := validate(input)
	if err != nil {
		return Number{}, err
	}
	return run(s)
}

// Compute — чисто арифметический вычислитель. В отличие от Evaluate не требует наличия
// оператора и не проверяет расстановку операторов статически: "42" даёт 42, а "2++3"
// отклоняется парсером как MalformedExpression.
func Compute(expr string) (Number, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return Number{}, newError(EmptyExpression, 0)
	}
	if len([]rune(trimmed)) > MaxLength {
		return Number{}, newError(TooLong, 0)
	}
	s := stripSpace(trimmed)
	if err := checkCharset(s); err != nil {
		return Number{}, err
	}
	if err := checkParens(s); err != nil {
		return Number{}, err
	}
	if err := checkZeroDivisor(s); err != nil {
		return Number{}, err
	}
	return run(s)
}

// run разбирает и вычисляет строку без пробелов. Любая паника внутри классифицируется
// как MalformedExpression и не выходит наружу.
func run(s string) (n Number, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = Number{}, newError(MalformedExpression, 0)
		}
	}()

	toks, err := lex(s)
	if err != nil {
		return Number{}, err
	}
	p := &parser{toks: toks}
	v, err := p.expr()
	if err != nil {
		return Number{}, err
	}
	if t := p.peek(); t.kind != tokenEOF {
		return Number{}, newError(MalformedExpression, t.pos)
	}
	return newNumber(v), nil
}
