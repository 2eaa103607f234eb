package utils

import "strings"

// NormalizeNationalID strips formatting (dots, dashes, spaces) from a CPF-like
// identifier and keeps digits only. Check-digit validation is not done here.
func NormalizeNationalID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
