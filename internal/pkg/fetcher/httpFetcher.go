package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxPayloadSize caps a single downloaded image at 50MB.
const maxPayloadSize = 50 << 20

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type httpFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher returns a Fetcher with a fixed per-request timeout.
func NewHTTPFetcher(timeout time.Duration) Fetcher {
	return &httpFetcher{
		client:  &http.Client{},
		timeout: timeout,
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}
