package util

import (
	"regexp"
	"strings"
)

// TruncateString truncates s to maxLen characters, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

var tagCleanRe = regexp.MustCompile(`[^a-z0-9-]+`)

// Slugify converts a display name into a lowercase dash-separated tag,
// e.g. "Pitch Shifter" -> "pitch-shifter".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = tagCleanRe.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	return s
}
