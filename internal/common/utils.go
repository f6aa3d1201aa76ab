package common

import "strings"

// HasAny returns true if s contains any of the substrings.
// Matches are case-sensitive and unanchored.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
