package tiktok

import "strings"

// Matches reports whether code appears in bio, ignoring case. No other
// normalization is applied.
func Matches(bio, code string) bool {
	return strings.Contains(strings.ToLower(bio), strings.ToLower(code))
}
