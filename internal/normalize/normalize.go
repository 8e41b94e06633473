package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Email trims and lowercases an email address so lookups and the
// unique index see one canonical form.
func Email(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}
