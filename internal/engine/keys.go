package engine

import "fmt"

// Press applies the operation bound to a keypad or keyboard key:
//
//	0-9 .        append to the display
//	+ - * /      set the operator
//	= Enter      equals
//	Backspace    delete the last character
//	Delete       clear entry
//	Escape       all clear
//	s S          negate
//
// Any other key returns ErrUnknownKey and leaves the calculator unchanged.
func (c *Calculator) Press(key string) error {
	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		return c.AppendDigitOrDecimal(rune(key[0]))
	case "+", "-", "*", "/":
		return c.SetOperator(Operator(key))
	case "=", "Enter":
		return c.Equals()
	case "Backspace":
		c.Backspace()
	case "Delete":
		c.ClearEntry()
	case "Escape":
		c.AllClear()
	case "s", "S":
		c.Negate()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}
