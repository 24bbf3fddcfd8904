package util

import (
	"testing"
)

const (
	id1 = "sGvgBXbBcVCjBIKCLS2Os"
	id2 = "tHwhCYcCdWDkCJLDMT3Pt"
)

func TestIsID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"Valid21Chars", id1, true},
		{"Valid21CharsAlt", id2, true},
		{"TooShort", "abc123", false},
		{"TooLong", "sGvgBXbBcVCjBIKCLS2OsX", false},
		{"WithSpace", "sGvgBXbBcVCjBIKCL 2Os", false},
		{"WithDot", "sGvgBXbBcVCjBIKCL.2Os", false},
		{"Empty", "", false},
		{"AllDashes", "---------------------", true},
		{"MixedValid", "Aa0_-Bb1_-Cc2_-Dd3_-E", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IsID(tc.in)
			if got != tc.want {
				t.Fatalf("IsID(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"JustID", id1, id1},
		{"RoutingKey", "analysis." + id1, id1},
		{"SessionKey", "session:" + id1, id1},
		{"MixedSeparators", "A,B;C|" + id1, id1},
		{"SpacePrefix", "PREFIX " + id1, id1},
		{"TooShort", "analysis.abc123", ""},
		{"Empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractID(tc.in)
			if got != tc.want {
				t.Fatalf("ExtractID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	a, err := NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	b, err := NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if !IsID(a) || !IsID(b) {
		t.Fatalf("NewID() produced invalid IDs %q, %q", a, b)
	}
	if a == b {
		t.Fatalf("NewID() returned the same ID twice: %q", a)
	}
}
