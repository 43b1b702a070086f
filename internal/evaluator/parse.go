package evaluator

import (
	"math"
	"strconv"
)

// expr   = term { ("+" | "-") term }
// term   = factor { ("*" | "/") factor }
// factor = num | "(" expr ")"
//
// Унарных операторов, переменных и вызовов функций нет: парсер распознаёт только эту грамматику.

// parser вычисляет значение прямо во время разбора, без построения дерева.
type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

// next возвращает текущий токен и сдвигается; на EOF остаётся на месте.
func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokenEOF {
		p.i++
	}
	return t
}

func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op.kind != tokenOp || (op.text != "+" && op.text != "-") {
			return v, nil
		}
		p.next()
		r, err := p.term()
		if err != nil {
			return 0, err
		}
		if v, err = apply(op, v, r); err != nil {
			return 0, err
		}
	}
}

func (p *parser) term() (float64, error) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op.kind != tokenOp || (op.text != "*" && op.text != "/") {
			return v, nil
		}
		p.next()
		r, err := p.factor()
		if err != nil {
			return 0, err
		}
		if v, err = apply(op, v, r); err != nil {
			return 0, err
		}
	}
}

func (p *parser) factor() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil && math.IsInf(v, 0) {
			return 0, newError(ResultOverflow, t.pos)
		}
		if err != nil {
			return 0, newError(MalformedExpression, t.pos)
		}
		return v, nil
	case tokenOpen:
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if c := p.next(); c.kind != tokenClose {
			return 0, newError(MalformedExpression, c.pos)
		}
		return v, nil
	}
	return 0, newError(MalformedExpression, t.pos)
}

func apply(op token, l, r float64) (float64, error) {
	var v float64
	switch op.text {
	case "+":
		v = l + r
	case "-":
		v = l - r
	case "*":
		v = l * r
	case "/":
		if r == 0 {
			return 0, newError(RuntimeDivisionByZero, op.pos)
		}
		v = l / r
	default:
		return 0, newError(MalformedExpression, op.pos)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, newError(ResultOverflow, op.pos)
	}
	return v, nil
}
