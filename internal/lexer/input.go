package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Lumen compares identifiers byte-for-byte once they leave the scanner, so
// the scanner canonicalizes its input before reading the first rune: a
// leading byte-order mark is dropped and the text is brought into Unicode
// NFC. Two spellings of the same accented identifier (precomposed vs.
// combining marks) therefore always lex to the same token, and editors that
// prepend a BOM don't produce a phantom ILLEGAL token. Offsets in token
// spans refer to the canonical text.
func canonicalize(input string) string {
	input = strings.TrimPrefix(input, "\uFEFF")
	if norm.NFC.IsNormalString(input) {
		return input
	}
	return norm.NFC.String(input)
}
