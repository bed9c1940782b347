// Package phone normalizes subscriber numbers to an E.164-like form.
package phone

import "strings"

// Normalize returns the number with a country prefix, stripping spaces and
// dashes. Numbers already carrying "+" pass through unchanged apart from
// whitespace cleanup.
func Normalize(raw, defaultCountryCode string) string {
	n := strings.TrimSpace(raw)
	n = strings.ReplaceAll(n, " ", "")
	n = strings.ReplaceAll(n, "-", "")
	if n == "" {
		return ""
	}
	if strings.HasPrefix(n, "+") {
		return n
	}
	return defaultCountryCode + n
}
