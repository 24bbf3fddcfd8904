package util

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idLength = 21

// NewID returns a fresh 21 character nanoid.
func NewID() (string, error) {
	return gonanoid.New()
}

// IsID reports whether s has the shape of a nanoid.
func IsID(s string) bool {
	if len(s) != idLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

// ExtractID returns the trailing nanoid of a qualified name such as a
// routing key "analysis.<id>" or "session:<id>". It returns "" when the
// last segment is not an ID.
func ExtractID(s string) string {
	idx := strings.LastIndexAny(s, ".,;:| ")
	candidate := s[idx+1:]
	if IsID(candidate) {
		return candidate
	}
	return ""
}
