package schema

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// numberNoise holds the characters stripped from display values before parsing.
var numberNoise = strings.NewReplacer("$", "", "%", "", ",", "")

// placeholderValues are the sentinels a form leaves behind when nothing was chosen.
var placeholderValues = map[string]struct{}{
	"":             {},
	"-":            {},
	"--":           {},
	"n/a":          {},
	"na":           {},
	"none":         {},
	"select":       {},
	"select...":    {},
	"-- select --": {},
}

// ParseNumber converts a display-form value such as "$1,200" or "15%" into a float.
// Currency symbols, percent signs, thousands separators and whitespace are ignored.
// Non-finite results are rejected.
func ParseNumber(raw string) (float64, bool) {
	cleaned := numberNoise.Replace(raw)
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IsPlaceholder reports whether a qualitative value is empty or a form sentinel.
func IsPlaceholder(raw string) bool {
	_, ok := placeholderValues[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// NameKey normalizes a partner name for case-insensitive lookups.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeLabel lowercases text and collapses anything that is not a letter or digit
// into single underscores. "YoY Revenue Growth (%)" becomes "yoy_revenue_growth".
func NormalizeLabel(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
