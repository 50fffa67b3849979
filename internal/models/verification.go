package models

import (
	"strings"
	"time"
)

// Result of a single verification request. Built once, never mutated.
type VerificationResult struct {
	ID        string    `json:"request_id"`
	Username  string    `json:"username"`
	Code      string    `json:"code"`
	Found     bool      `json:"found"`
	Timestamp time.Time `json:"timestamp"`
}

// NormalizeUsername strips surrounding whitespace and a leading @ so
// "@Example.User " becomes "Example.User".
func NormalizeUsername(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "@")
}
