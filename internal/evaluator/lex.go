package evaluator

import (
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	// tokenNum — десятичный литерал: цифры и не больше одной точки.
	tokenNum
	// tokenOp — один из Operators.
	tokenOp
	tokenOpen
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Operators — символы бинарных операторов.
const Operators = "+-*/"

// Allowed — полный алфавит выражения (без учёта пробелов).
const Allowed = "0123456789" + Operators + "()."

type token struct {
	text string
	kind tokenKind
	pos  int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

// stripSpace удаляет из строки все пробельные символы.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// lex разбивает строку без пробелов на токены. Строка должна состоять только из Allowed;
// на некорректном числовом литерале (1.2.3, одиночная точка) возвращает MalformedExpression.
func lex(s string) ([]token, error) {
	toks := make([]token, 0, len(s)/2+1)
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isNumByte(c):
			j := i
			for j < len(s) && isNumByte(s[j]) {
				j++
			}
			text := s[i:j]
			if !validNumber(text) {
				return nil, newError(MalformedExpression, i+1)
			}
			toks = append(toks, token{text: text, kind: tokenNum, pos: i + 1})
			i = j
			continue
		case strings.IndexByte(Operators, c) >= 0:
			toks = append(toks, token{text: string(c), kind: tokenOp, pos: i + 1})
		case c == '(':
			toks = append(toks, token{text: "(", kind: tokenOpen, pos: i + 1})
		case c == ')':
			toks = append(toks, token{text: ")", kind: tokenClose, pos: i + 1})
		default:
			return nil, newError(InvalidCharacters, i+1)
		}
		i++
	}
	return append(toks, token{kind: tokenEOF, pos: len(s) + 1}), nil
}

func isNumByte(c byte) bool {
	return '0' <= c && c <= '9' || c == '.'
}

// validNumber: хотя бы одна цифра и не больше одной точки.
func validNumber(s string) bool {
	dot, dig := false, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '.':
			if dot {
				return false
			}
			dot = true
		case '0' <= c && c <= '9':
			dig = true
		default:
			return false
		}
	}
	return dig
}
