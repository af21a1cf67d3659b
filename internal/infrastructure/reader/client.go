// Package reader wraps the external reader service that converts an
// arbitrary URL into cleaned readable text.
package reader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/linksaver/linksaver/internal/api/metrics"
	"github.com/linksaver/linksaver/internal/core/domain"
)

const requestTimeout = 15 * time.Second

// Client calls the reader service. The API key is optional:
// unauthenticated calls are allowed but more tightly limited upstream.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// ReadPage fetches readable text for url. Failure statuses are
// classified here, at the point of failure, into the domain sentinels;
// nothing downstream inspects status codes or error messages.
func (c *Client) ReadPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url, nil)
	if err != nil {
		return "", fmt.Errorf("reader request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", "LinkSaver/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ReaderRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("reader fetch: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.ReaderRequestsTotal.WithLabelValues("429").Inc()
		return "", domain.ErrReaderRateLimited
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.ReaderRequestsTotal.WithLabelValues("401").Inc()
		return "", domain.ErrReaderUnauthorized
	case resp.StatusCode >= 500:
		metrics.ReaderRequestsTotal.WithLabelValues("5xx").Inc()
		return "", domain.ErrReaderUnavailable
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		metrics.ReaderRequestsTotal.WithLabelValues("other").Inc()
		return "", fmt.Errorf("reader: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ReaderRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("reader body: %w", err)
	}

	metrics.ReaderRequestsTotal.WithLabelValues("2xx").Inc()
	return string(body), nil
}
