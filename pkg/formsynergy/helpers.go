package formsynergy

import "strings"

// Includes reports whether needle occurs in haystack, ignoring case. Empty
// inputs never match.
func Includes(needle, haystack string) bool {
	if haystack == "" || needle == "" {
		return false
	}

	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
