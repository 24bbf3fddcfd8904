package util

import (
	"testing"
	"time"
)

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{name: "unset", want: 15},
		{name: "valid", value: "4", set: true, want: 4},
		{name: "negative", value: "-1", set: true, want: -1},
		{name: "padded", value: " 8 ", set: true, want: 8},
		{name: "malformed", value: "many", set: true, want: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("PLOTLINE_TEST_INT", tt.value)
			}
			if got := GetEnvInt("PLOTLINE_TEST_INT", 15); got != tt.want {
				t.Errorf("GetEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvStringBlankUsesDefault(t *testing.T) {
	t.Setenv("PLOTLINE_TEST_STRING", "  ")
	if got := GetEnvString("PLOTLINE_TEST_STRING", "gazetteer"); got != "gazetteer" {
		t.Errorf("GetEnvString() = %q, want gazetteer", got)
	}
}

func TestGetEnvMinutes(t *testing.T) {
	t.Setenv("PLOTLINE_TEST_MINUTES", "3")
	if got := GetEnvMinutes("PLOTLINE_TEST_MINUTES", 30); got != 3*time.Minute {
		t.Errorf("GetEnvMinutes() = %v, want 3m", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("PLOTLINE_TEST_BOOL", "yes")
	if got := GetEnvBool("PLOTLINE_TEST_BOOL", true); !got {
		t.Errorf("GetEnvBool() with malformed value = false, want default true")
	}
	t.Setenv("PLOTLINE_TEST_BOOL", "false")
	if got := GetEnvBool("PLOTLINE_TEST_BOOL", true); got {
		t.Errorf("GetEnvBool() = true, want false")
	}
}
