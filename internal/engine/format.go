package engine

import (
	"math"
	"strconv"
	"strings"
)

// formatNumber renders v in the shortest form that round-trips, switching to
// exponent notation outside [1e-6, 1e21) the way browsers print numbers.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		mant, sign, digits := splitExponent(strconv.FormatFloat(v, 'e', -1, 64))
		return mant + "e" + sign + digits
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fitToDisplay returns the display text for a computed result. Text longer
// than MaxDisplayLen is rewritten as "<significand>e<exponent>" with the
// significand cut, not rounded, so the whole string is MaxDisplayLen long.
func fitToDisplay(v float64) string {
	s := formatNumber(v)
	if len(s) <= MaxDisplayLen {
		return s
	}

	mant, sign, digits := splitExponent(strconv.FormatFloat(v, 'e', -1, 64))
	if sign == "+" {
		sign = ""
	}
	exp := sign + digits

	n := MaxDisplayLen - len(exp) - 1
	if n > len(mant) {
		n = len(mant)
	}

	return mant[:n] + "e" + exp
}

// splitExponent splits strconv 'e' output such as "1.5e+07" into
// ("1.5", "+", "7").
func splitExponent(s string) (mant, sign, digits string) {
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return s, "", "0"
	}

	mant, exp := s[:i], s[i+1:]
	if exp != "" && (exp[0] == '+' || exp[0] == '-') {
		sign, exp = exp[:1], exp[1:]
	}

	digits = strings.TrimLeft(exp, "0")
	if digits == "" {
		digits = "0"
	}

	return mant, sign, digits
}
