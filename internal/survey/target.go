package survey

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CanonicalTarget normalizes a user-supplied target label for journal
// records and display. Catalog designations (anything containing a
// digit, e.g. "G035.39-00.33") are uppercased; free-form object names
// are whitespace-collapsed and title-cased.
func CanonicalTarget(s string) string {
	label := strings.Join(strings.Fields(s), " ")
	if label == "" {
		return ""
	}
	if strings.ContainsFunc(label, unicode.IsDigit) {
		return strings.ToUpper(label)
	}
	return cases.Title(language.Und).String(label)
}
