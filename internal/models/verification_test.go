package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"@Example.User ", "Example.User"},
		{"example.user", "example.user"},
		{"  @handle", "handle"},
		{"@", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeUsername(tt.raw), "raw=%q", tt.raw)
	}
}
