package util

import (
	"strings"
	"unicode/utf8"
)

const utf8BOM = "\uFEFF"

// SanitizeText drops invalid UTF-8, NUL bytes and a leading byte order
// mark.
func SanitizeText(value string) string {
	if value == "" {
		return value
	}

	value = strings.TrimPrefix(value, utf8BOM)
	if !utf8.ValidString(value) {
		value = strings.ToValidUTF8(value, "")
	}
	return strings.ReplaceAll(value, "\x00", "")
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(value string) string {
	if !strings.ContainsRune(value, '\r') {
		return value
	}
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(value, "\r", "\n")
}
