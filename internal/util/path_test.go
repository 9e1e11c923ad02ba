package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPathTraversal(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photos/2026/cover.jpg", false},
		{"cover.jpg", false},
		{"photos/2026..jpg", false},
		{"photos/./cover.jpg", false},
		{"../secrets.txt", true},
		{"photos/../../etc/passwd", true},
		{"photos/sub/../../../x", true},
		{"..", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsPathTraversal(tt.path), "path %q", tt.path)
	}
}
