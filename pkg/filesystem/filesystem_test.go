package filesystem

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func implementations(t *testing.T) map[string]struct {
	fs   types.FS
	root string
} {
	return map[string]struct {
		fs   types.FS
		root string
	}{
		"os":     {fs: NewOS(), root: t.TempDir()},
		"memory": {fs: NewMemory(), root: "/work"},
	}
}

func writeFile(t *testing.T, fsys types.FS, name, content string) {
	t.Helper()
	w, err := fsys.Create(name)
	require.NoError(t, err)
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func readFile(t *testing.T, fsys types.FS, name string) string {
	t.Helper()
	r, err := fsys.Open(name)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestFSOperations(t *testing.T) {
	for name, impl := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			fsys := impl.fs
			dir := filepath.Join(impl.root, "sub", "dir")
			file := filepath.Join(dir, "test.txt")

			require.NoError(t, fsys.MkdirAll(dir, 0755))
			writeFile(t, fsys, file, "hello world")

			info, err := fsys.Stat(file)
			require.NoError(t, err)
			assert.Equal(t, "test.txt", info.Name())
			assert.Equal(t, int64(11), info.Size())

			r, err := fsys.Open(file)
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			assert.Equal(t, "hello world", string(data))

			w, err := fsys.Create(file)
			require.NoError(t, err)
			_, err = w.Write([]byte("bye"))
			require.NoError(t, err)
			require.NoError(t, w.Close())

			assert.Equal(t, "bye", readFile(t, fsys, file), "Create must truncate")

			require.NoError(t, fsys.Remove(file))
			assert.False(t, Exists(fsys, file))
			assert.True(t, Exists(fsys, dir))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	fsys := NewMemory()

	require.NoError(t, EnsureDir(fsys, "/a/b/c"))
	require.NoError(t, EnsureDir(fsys, "/a/b/c"), "second call is a no-op")

	info, err := fsys.Stat("/a/b/c")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirBlockedByFile(t *testing.T) {
	fsys := NewOS()
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	writeFile(t, fsys, blocker, "x")

	err := EnsureDir(fsys, filepath.Join(blocker, "child"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
}

func TestWriteStream(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/out", 0755))
	writeFile(t, fsys, "/out/f.txt", "a much longer previous content")

	n, err := WriteStream(fsys, "/out/f.txt", strings.NewReader("new"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.Equal(t, "new", readFile(t, fsys, "/out/f.txt"))
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestWriteStreamRemovesPartialFile(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/out", 0755))

	r := io.MultiReader(bytes.NewReader([]byte("partial")), failingReader{})
	_, err := WriteStream(fsys, "/out/f.txt", r)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
	assert.False(t, Exists(fsys, "/out/f.txt"))
}
