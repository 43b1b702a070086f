package evaluator

import (
	"math"
	"strconv"
)

// Decimals — число знаков после запятой, до которого округляется дробный результат.
const Decimals = 10

// Number — успешный результат вычисления: целое или дробное, округлённое до Decimals знаков.
type Number struct {
	v       float64
	integer bool
}

// newNumber округляет значение и определяет, целое ли оно.
// Округление идёт через десятичное представление, поэтому 0.1+0.2 даёт ровно 0.3.
func newNumber(v float64) Number {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', Decimals, 64), 64)
	if err != nil {
		rounded = v
	}
	if rounded == 0 {
		rounded = 0 // -0 → 0
	}
	return Number{v: rounded, integer: rounded == math.Trunc(rounded)}
}

// Float64 возвращает значение как float64.
func (n Number) Float64() float64 {
	return n.v
}

// IsInteger сообщает, что результат целый и не имеет дробной части.
func (n Number) IsInteger() bool {
	return n.integer
}

// String — текстовое представление: без дробной части для целых, не больше Decimals знаков для дробных.
func (n Number) String() string {
	if n.integer {
		return strconv.FormatFloat(n.v, 'f', 0, 64)
	}
	return strconv.FormatFloat(n.v, 'f', -1, 64)
}

// MarshalJSON пишет число JSON-литералом: 5, 0.3333333333.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}
