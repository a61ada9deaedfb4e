package common

import "strings"

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Lower normalizes user text for keyword matching.
func Lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
