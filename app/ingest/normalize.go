package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize collapses an inconsistently cased and punctuated upstream string
// into one canonical display form: every punctuation, symbol and digit rune is
// dropped, the remainder is title-cased and trimmed. It is idempotent.
//
// An empty or all-punctuation input normalizes to ""; callers must treat an
// empty normalized name as invalid for category and product creation.
func Normalize(raw string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, raw)

	return strings.TrimSpace(cases.Title(language.Und).String(stripped))
}
