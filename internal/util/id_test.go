package util

import (
	"strings"
	"testing"
	"time"
)

func TestNewTaskID(t *testing.T) {
	t.Run("combines timestamp and slug", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local)
		id := NewTaskID("Fix bug X", now)
		if id != "20250101T120000_Fix_bug_X" {
			t.Errorf("got %q, want %q", id, "20250101T120000_Fix_bug_X")
		}
	})

	t.Run("second precision", func(t *testing.T) {
		now := time.Date(2025, 6, 30, 23, 59, 59, 999999999, time.Local)
		id := NewTaskID("x", now)
		if !strings.HasPrefix(id, "20250630T235959_") {
			t.Errorf("got %q, want prefix %q", id, "20250630T235959_")
		}
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces become underscores", "Fix bug X", "Fix_bug_X"},
		{"case preserved", "Deploy API Gateway", "Deploy_API_Gateway"},
		{"punctuation dropped", "fix: the (big) bug!", "fix_the_big_bug"},
		{"consecutive separators collapse", "a - b -- c", "a_b_c"},
		{"leading and trailing trimmed", "  hello  ", "hello"},
		{"digits kept", "migrate to v2", "migrate_to_v2"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("truncates to 50 runes before slugifying", func(t *testing.T) {
		long := strings.Repeat("a", 60)
		got := Slugify(long)
		if len(got) != 50 {
			t.Errorf("got %d runes, want 50", len(got))
		}
	})
}
