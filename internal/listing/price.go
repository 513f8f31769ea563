package listing

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice converts a display price such as "€1,500" to a number for
// comparisons. It strips the euro sign, whitespace and commas, then reads the
// longest leading decimal number. Unparseable input yields 0.
func ParsePrice(cell string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if r == '€' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cell)

	v, err := strconv.ParseFloat(leadingNumber(cleaned), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// leadingNumber returns the longest prefix of s that is a decimal number with
// an optional sign, fraction and exponent.
func leadingNumber(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return s[:i]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
