// Package lexer splits program text into words. The language has no
// punctuation-level tokens: every whitespace-delimited run of characters is
// one word, and the parser classifies words afterwards.
package lexer

import (
	"strings"
	"unicode"
)

// Lex splits input on Unicode whitespace. It never fails; empty or blank
// input yields an empty slice.
func Lex(input string) []string {
	return strings.FieldsFunc(input, unicode.IsSpace)
}
