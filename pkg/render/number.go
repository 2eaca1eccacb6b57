package render

import "strconv"

// num formats a coordinate or color component the way PDF operators expect:
// shortest decimal form, no exponent, no trailing zeros ("10", "0.5").
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
