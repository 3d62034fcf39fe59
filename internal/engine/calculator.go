package engine

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	// MaxDisplayLen is the widest text the display can hold.
	MaxDisplayLen = 12

	// DefaultDisplay is shown whenever the display would otherwise be empty.
	DefaultDisplay = "0"
)

// State is a read-only snapshot of what a keypad renders.
type State struct {
	Display  string   `json:"display"`
	Memo     string   `json:"memo"`
	Operator Operator `json:"operator"`
}

// Calculator holds the display buffer and at most one pending operation.
type Calculator struct {
	display  string
	memo     string
	first    float64
	hasFirst bool
	op       Operator
}

// New returns a calculator in its all-clear state.
func New() *Calculator {
	c := &Calculator{}
	c.reset(DefaultDisplay)
	return c
}

func (c *Calculator) Display() string { return c.display }

func (c *Calculator) Memo() string { return c.memo }

// Operator returns the pending operator, or "" when none is recorded.
func (c *Calculator) Operator() Operator { return c.op }

// Pending returns the first operand and operator awaiting a second operand.
func (c *Calculator) Pending() (float64, Operator, bool) {
	return c.first, c.op, c.hasFirst
}

func (c *Calculator) State() State {
	return State{Display: c.display, Memo: c.memo, Operator: c.op}
}

// AppendDigitOrDecimal appends ch to the display. A second decimal point and
// input past MaxDisplayLen are ignored.
func (c *Calculator) AppendDigitOrDecimal(ch rune) error {
	if ch != '.' && (ch < '0' || ch > '9') {
		return ErrInvalidInput
	}

	if ch == '.' && strings.Contains(c.display, ".") {
		return nil
	}

	if len(c.display) >= MaxDisplayLen {
		return nil
	}

	c.display = trimLeadingZero(c.display + string(ch))
	return nil
}

// Backspace removes the last display character.
func (c *Calculator) Backspace() {
	if len(c.display) <= 1 {
		c.ClearEntry()
		return
	}

	c.display = c.display[:len(c.display)-1]
}

// ClearEntry resets the display and keeps any pending operation.
func (c *Calculator) ClearEntry() {
	c.display = DefaultDisplay
}

// AllClear drops the display, the pending operation and the memo.
func (c *Calculator) AllClear() {
	c.reset(DefaultDisplay)
}

// Negate toggles a leading minus sign. "0" is never negated, and a display
// already at MaxDisplayLen is not widened.
func (c *Calculator) Negate() {
	if rest, ok := strings.CutPrefix(c.display, "-"); ok {
		if rest == "" {
			rest = DefaultDisplay
		}
		c.display = rest
		return
	}

	if c.display == DefaultDisplay || len(c.display) >= MaxDisplayLen {
		return
	}

	c.display = "-" + c.display
}

// SetOperator records op as the pending operator. If an operation is already
// pending, the display is taken as its second operand and the result becomes
// the new first operand. The display is cleared whatever the outcome.
//
// When evaluation fails the operator is still recorded as long as a first
// operand exists, so the user can retype the second operand. An out-of-range
// result clears everything.
func (c *Calculator) SetOperator(op Operator) error {
	if !op.Valid() {
		return ErrInvalidInput
	}

	v, err := c.parseDisplay()
	if err == nil {
		if !c.hasFirst {
			c.first, c.hasFirst = v, true
		} else {
			var r float64
			r, err = evaluateFinite(c.first, v, c.op)
			if err == nil {
				c.first = r
			}
		}
	}

	if errors.Is(err, ErrOutOfRange) {
		c.AllClear()
		return err
	}

	if err == nil || c.hasFirst {
		c.setOperator(op)
	}
	c.ClearEntry()

	return err
}

// Equals evaluates the pending operation with the display as second operand
// and leaves only the formatted result on the display. It does nothing when
// no operation is pending.
//
// A display that does not parse leaves all state untouched. Division by zero
// clears only the display so another divisor can be entered. An out-of-range
// result clears everything.
func (c *Calculator) Equals() error {
	if !c.hasFirst {
		return nil
	}

	v, err := c.parseDisplay()
	if err != nil {
		return err
	}

	r, err := evaluateFinite(c.first, v, c.op)
	switch {
	case errors.Is(err, ErrDivisionByZero):
		c.ClearEntry()
		return err
	case errors.Is(err, ErrOutOfRange):
		c.AllClear()
		return err
	case err != nil:
		return err
	}

	c.reset(fitToDisplay(r))
	return nil
}

func (c *Calculator) parseDisplay() (float64, error) {
	v, err := strconv.ParseFloat(c.display, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &DisplayParseError{Text: c.display}
	}
	return v, nil
}

func (c *Calculator) setOperator(op Operator) {
	c.op = op
	c.memo = formatNumber(c.first) + " " + string(op)
}

func (c *Calculator) reset(display string) {
	c.display = display
	c.memo = ""
	c.first = 0
	c.hasFirst = false
	c.op = ""
}

func evaluateFinite(a, b float64, op Operator) (float64, error) {
	r, err := Evaluate(a, b, op)
	if err != nil {
		return 0, err
	}

	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, ErrOutOfRange
	}

	return r, nil
}

// trimLeadingZero drops one superfluous zero in front of the integer part:
// "05" becomes "5" and "-05" becomes "-5", while "0." is kept.
func trimLeadingZero(s string) string {
	sign := ""
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = "-", rest
	}

	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		s = s[1:]
	}

	return sign + s
}
