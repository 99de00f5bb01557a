package testutil

import (
	"context"
	"io"
	"strings"

	"github.com/stretchr/testify/mock"
)

// MockFetcher is a testify mock implementing acquire.Fetcher
type MockFetcher struct {
	mock.Mock
}

// Fetch records the call and returns the configured body and error
func (m *MockFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// Body wraps a string as a response body
func Body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}
