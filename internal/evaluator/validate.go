package evaluator

import (
	"strings"
	"unicode/utf8"
)

// MaxLength — максимальная длина выражения в символах.
const MaxLength = 500

// Validate прогоняет статические проверки публичного валидатора (стадии 1–8) и возвращает
// первую сработавшую как *Error. Порядок стадий важен: каждая следующая не запускается после ошибки.
func Validate(input string) error {
	_, err := validate(input)
	return err
}

// validate возвращает строку без пробелов, если все стадии пройдены.
func validate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", newError(EmptyExpression, 0)
	}
	if utf8.RuneCountInString(trimmed) > MaxLength {
		return "", newError(TooLong, 0)
	}

	s := stripSpace(trimmed)
	if err := checkCharset(s); err != nil {
		return "", err
	}
	if err := checkParens(s); err != nil {
		return "", err
	}

	if !strings.ContainsAny(s, "0123456789") {
		return "", newError(NoOperand, 0)
	}
	if !strings.ContainsAny(s, Operators) {
		return "", newError(NoOperator, 0)
	}

	if err := checkConsecutive(s); err != nil {
		return "", err
	}
	if err := checkEnds(s); err != nil {
		return "", err
	}
	if err := checkZeroDivisor(s); err != nil {
		return "", err
	}
	return s, nil
}

func checkCharset(s string) error {
	pos := 0
	for _, r := range s {
		pos++
		if r >= utf8.RuneSelf || strings.IndexByte(Allowed, byte(r)) < 0 {
			return newError(InvalidCharacters, pos)
		}
	}
	return nil
}

func checkParens(s string) error {
	if strings.Count(s, "(") != strings.Count(s, ")") {
		return newError(UnbalancedParentheses, 0)
	}
	return nil
}

// checkConsecutive ловит повторы из + * / и литеральное "--". Пары вида "*-" сюда не попадают
// и отклоняются парсером: унарного минуса в грамматике нет.
func checkConsecutive(s string) error {
	for i := 0; i+1 < len(s); i++ {
		a, b := s[i], s[i+1]
		if isRepeatable(a) && isRepeatable(b) || a == '-' && b == '-' {
			return newError(ConsecutiveOperators, i+1)
		}
	}
	return nil
}

func isRepeatable(c byte) bool {
	return c == '+' || c == '*' || c == '/'
}

func checkEnds(s string) error {
	switch s[0] {
	case '+', '*', '/':
		return newError(LeadingOrTrailingOperator, 1)
	}
	if strings.IndexByte(Operators, s[len(s)-1]) >= 0 {
		return newError(LeadingOrTrailingOperator, len(s))
	}
	return nil
}

// checkZeroDivisor ищет "/" за которым идёт литерал ровно "0". Делитель 0.0, 00 или (4-4)
// проходит и ловится при вычислении как RuntimeDivisionByZero.
func checkZeroDivisor(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] != '/' {
			continue
		}
		j := i + 1
		for j < len(s) && isNumByte(s[j]) {
			j++
		}
		if s[i+1:j] == "0" {
			return newError(DivisionByZeroLiteral, i+1)
		}
	}
	return nil
}
