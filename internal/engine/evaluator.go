// Package engine implements the keypad calculator: a display buffer, at most
// one pending binary operation, and the arithmetic it delegates to.
//
// A Calculator is not safe for concurrent use. Callers that share one across
// goroutines must serialise access themselves.
package engine

import "fmt"

// Operator is one of the four keypad operator symbols.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
)

// Valid reports whether op is one of the four supported symbols.
func (op Operator) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Evaluate applies op to a and b. Division by zero returns ErrDivisionByZero.
// op must be valid; Evaluate panics otherwise.
func Evaluate(a, b float64, op Operator) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		panic(fmt.Sprintf("engine: unknown operator %q", string(op)))
	}
}
