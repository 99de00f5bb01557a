package testutil

import (
	"io"
	"testing"

	"github.com/arthur-debert/pluck/pkg/types"
	"github.com/stretchr/testify/assert"
)

// AssertFileContent checks that path exists and holds want
func AssertFileContent(t *testing.T, fs types.FS, path, want string) bool {
	t.Helper()
	r, err := fs.Open(path)
	if !assert.NoError(t, err, "opening %s", path) {
		return false
	}
	defer func() { _ = r.Close() }()

	got, err := io.ReadAll(r)
	if !assert.NoError(t, err, "reading %s", path) {
		return false
	}
	return assert.Equal(t, want, string(got), "content of %s", path)
}

// AssertNoFile checks that path does not exist
func AssertNoFile(t *testing.T, fs types.FS, path string) bool {
	t.Helper()
	_, err := fs.Stat(path)
	return assert.Error(t, err, "%s should not exist", path)
}
