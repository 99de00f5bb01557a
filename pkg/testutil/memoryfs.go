package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/pluck/pkg/filesystem"
	"github.com/arthur-debert/pluck/pkg/types"
	"github.com/stretchr/testify/require"
)

// NewMemoryFS returns an empty in-memory filesystem
func NewMemoryFS() types.FS {
	return filesystem.NewMemory()
}

// WriteFiles creates each path with its content, making parent directories
func WriteFiles(t *testing.T, fs types.FS, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, filesystem.EnsureDir(fs, filepath.Dir(path)))
		_, err := filesystem.WriteStream(fs, path, strings.NewReader(content))
		require.NoError(t, err)
	}
}
