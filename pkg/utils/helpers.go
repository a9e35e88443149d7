package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// NormalizeDecimal rewrites comma decimal separators as periods
func NormalizeDecimal(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

// ParseDecimal parses text that may use a comma decimal separator.
// Unparseable text yields 0.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(NormalizeDecimal(s))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Fixed3 formats v with exactly three decimals
func Fixed3(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// TrimTrailingWord drops trailing whitespace when it follows a word character,
// leaving text that ends in punctuation untouched.
func TrimTrailingWord(s string) string {
	t := strings.TrimRightFunc(s, unicode.IsSpace)
	if t == "" {
		return s
	}
	r := []rune(t)
	last := r[len(r)-1]
	if unicode.IsLetter(last) || unicode.IsDigit(last) || last == '_' {
		return t
	}
	return s
}
