package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// RatePageClient fetches the published rate page. The ceiling on a fetch is
// the injected http.Client's timeout; this is the only time-bounded external
// call in a cycle.
type RatePageClient struct {
	http *http.Client
	url  string
}

func NewRatePageClient(httpClient *http.Client, url string) *RatePageClient {
	return &RatePageClient{http: httpClient, url: url}
}

func (c *RatePageClient) FetchPage(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %q: %w", c.url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch rate page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d fetching rate page: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read rate page body: %w", err)
	}
	return string(body), nil
}
