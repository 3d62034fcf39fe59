package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when the second operand of a division is zero.
	ErrDivisionByZero = errors.New("cannot divide by zero")

	// ErrOutOfRange is returned when a result is not a finite float64.
	ErrOutOfRange = errors.New("result out of range")

	// ErrUnknownKey is returned by Press for keys with no calculator binding.
	ErrUnknownKey = errors.New("unknown key")

	// ErrInvalidInput is returned for a display character other than a digit
	// or decimal point, and for an operator outside + - * /.
	ErrInvalidInput = errors.New("invalid input")
)

// DisplayParseError reports a display buffer that does not hold a number.
type DisplayParseError struct {
	Text string
}

func (e *DisplayParseError) Error() string {
	return fmt.Sprintf("entered an invalid number: %q", e.Text)
}
