package testutil

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFilesAndAssert(t *testing.T) {
	fs := NewMemoryFS()
	WriteFiles(t, fs, map[string]string{
		"/a/b/c.txt": "hello",
		"/d.txt":     "world",
	})

	AssertFileContent(t, fs, "/a/b/c.txt", "hello")
	AssertFileContent(t, fs, "/d.txt", "world")
	AssertNoFile(t, fs, "/missing.txt")
}

func TestFileServer(t *testing.T) {
	srv := NewFileServer(t, map[string]string{"/a.txt": "A"})

	resp, err := http.Get(srv.URLFor("/a.txt"))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "A", string(body))

	resp, err = http.Get(srv.URLFor("/nope"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	srv.Set("/a.txt", "B")
	resp, err = http.Get(srv.URLFor("/a.txt"))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "B", string(body))

	assert.Equal(t, 2, srv.Hits("/a.txt"))
	assert.Equal(t, 1, srv.Hits("/nope"))
}
