// Package numeric holds the single "parse or skip" rule shared by every
// aggregation: a cell either is a finite base-10 number or it is absent.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// Parse interprets s as a base-10 floating-point number. Surrounding white
// space is ignored. It reports false for empty text, hex forms, digit
// separators, nan/inf spellings and values that overflow float64.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !decimalOnly(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// decimalOnly rejects anything strconv would accept beyond plain decimal
// notation ("0x1p3", "1_000", "Inf").
func decimalOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
		case c == '+', c == '-', c == '.', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}
