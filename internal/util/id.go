package util

import (
	"strings"
	"time"
	"unicode"
)

// taskIDLayout is the compact local-time prefix of every task ID.
const taskIDLayout = "20060102T150405"

// slugMaxRunes caps how much of the description makes it into the ID.
const slugMaxRunes = 50

// NewTaskID builds a task ID from the creation time and the description,
// e.g. "20250101T120000_Fix_bug_X". Uniqueness rests on second-precision
// timing, not on a structural check.
func NewTaskID(description string, now time.Time) string {
	return now.Format(taskIDLayout) + "_" + Slugify(description)
}

// Slugify converts a description into an ID-safe fragment. It truncates the
// input to 50 runes, keeps letters and digits (case preserved), replaces
// everything else with underscores, collapses runs of underscores, and trims
// leading/trailing underscores.
func Slugify(s string) string {
	runes := []rune(s)
	if len(runes) > slugMaxRunes {
		runes = runes[:slugMaxRunes]
	}

	var result strings.Builder
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}

	// Collapse multiple consecutive underscores
	str := result.String()
	for strings.Contains(str, "__") {
		str = strings.ReplaceAll(str, "__", "_")
	}

	// Trim leading/trailing underscores
	return strings.Trim(str, "_")
}
