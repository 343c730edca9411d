package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	maxRetries        = 3
	defaultTimeout    = 30 * time.Second
	retryWaitDuration = 2 * time.Second
	maxPageSize       = 5 << 20
)

// BaseCrawler provides common HTTP functionality for catalog sources
type BaseCrawler struct {
	Client    *http.Client
	Logger    *zap.Logger
	Headers   map[string]string
	RetryWait time.Duration
}

// NewBaseCrawler creates a new base crawler with default settings
func NewBaseCrawler(log *zap.Logger) *BaseCrawler {
	return &BaseCrawler{
		Client: &http.Client{
			Timeout: defaultTimeout,
		},
		Logger:    log.Named("base-crawler"),
		Headers:   getDefaultHeaders(),
		RetryWait: retryWaitDuration,
	}
}

// FetchURL retrieves the content of a URL with retry logic
func (c *BaseCrawler) FetchURL(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		content, retry, err := c.fetchOnce(ctx, url)
		if err == nil {
			c.Logger.Debug("Successfully fetched URL",
				zap.String("url", url),
				zap.Int("content_length", len(content)))
			return content, nil
		}
		if !retry {
			return nil, err
		}

		lastErr = err
		c.Logger.Warn("Fetch attempt failed",
			zap.Error(err),
			zap.String("url", url),
			zap.Int("attempt", attempt))

		if attempt == maxRetries {
			break
		}
		select {
		case <-time.After(c.RetryWait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("failed to fetch URL after %d attempts: %w", maxRetries, lastErr)
}

// fetchOnce performs one request. retry reports whether the failure is worth another attempt.
func (c *BaseCrawler) fetchOnce(ctx context.Context, url string) (content []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range c.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("status code %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	content, err = io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}
	return content, false, nil
}

// getDefaultHeaders returns common headers for HTTP requests
func getDefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "mamabot-catalog-sync/1.0",
		"Accept":          "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-IN,en;q=0.8",
		"Cache-Control":   "no-cache",
	}
}
