package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHomeDirectory(t *testing.T) {
	t.Setenv("HOME", "/home/testuser")

	home, err := GetHomeDirectory()
	require.NoError(t, err)
	assert.NotEmpty(t, home)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/assets/logo.png", filepath.Join(home, "assets", "logo.png")},
		{"assets/logo.png", "assets/logo.png"},
		{"/abs/path", "/abs/path"},
		{"~other/file", "~other/file"},
		{"a/~/b", "a/~/b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
