package stringutil

import "strings"

// FirstNonEmpty returns the first value that is non-empty after trimming,
// trimmed.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
