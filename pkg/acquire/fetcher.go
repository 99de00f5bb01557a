package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/arthur-debert/pluck/pkg/errors"
)

// Fetcher opens a remote resource for reading. The caller closes the body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher fetches resources with a plain GET
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a Fetcher using client, or http.DefaultClient when
// client is nil
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Fetch issues a GET and returns the body of a 2xx response
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid url %s", url).
			WithDetail("url", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(ctx.Err(), errors.ErrCanceled, "download of %s canceled", url).
				WithDetail("url", url)
		}
		return nil, errors.Wrapf(err, errors.ErrDownload, "cannot download %s", url).
			WithDetail("url", url)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, errors.Newf(errors.ErrHTTPStatus, "GET %s returned %s", url, statusText(resp)).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode)
	}

	return resp.Body, nil
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d", resp.StatusCode)
}
