package sanitizer

import (
	"strings"
	"unicode"
)

// CollapseSpaces trims s and folds every run of whitespace, including tabs
// and newlines pasted into listing forms, into a single space.
func CollapseSpaces(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			pending = true
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func NormalizeName(name string) string {
	return CollapseSpaces(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizePerk(perk string) string {
	return strings.ToLower(CollapseSpaces(perk))
}
