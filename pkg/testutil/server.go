package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FileServer serves canned bodies by path and records requests
type FileServer struct {
	*httptest.Server

	mu    sync.Mutex
	files map[string]string
	hits  map[string]int
}

// NewFileServer starts a server answering GET path with files[path] and
// 404 for anything else. It is closed when the test ends.
func NewFileServer(t *testing.T, files map[string]string) *FileServer {
	t.Helper()
	fs := &FileServer{files: files, hits: make(map[string]int)}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)
	return fs
}

func (s *FileServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	body, ok := s.files[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write([]byte(body))
}

// URLFor returns the absolute URL for path
func (s *FileServer) URLFor(path string) string {
	return s.URL + path
}

// Set replaces the body served for path
func (s *FileServer) Set(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = body
}

// Hits returns how many requests path received
func (s *FileServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}
