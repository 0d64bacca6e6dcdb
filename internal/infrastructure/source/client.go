package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a source response is read
const maxBodyBytes = 4 << 20

// ClientOptions configures a platform source client
type ClientOptions struct {
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration
	MaxRetries    int
	UserAgent     string
}

// Client queries one platform's JSON search endpoint
type Client struct {
	platform    domain.Platform
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	maxRetries  int
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
}

// NewClient creates a source client for a platform search endpoint
func NewClient(platform domain.Platform, baseURL string, opts ClientOptions) *Client {
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "PriceLens/1.0"
	}

	return &Client{
		platform: platform,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL:     baseURL,
		userAgent:   opts.UserAgent,
		maxRetries:  opts.MaxRetries,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.Burst),
		backoff:     exponentialBackoff,
	}
}

// Platform returns the platform this client serves
func (c *Client) Platform() domain.Platform {
	return c.platform
}

// Search fetches listings for a query. Transport errors, 429 and 5xx responses
// are retried with exponential backoff; other 4xx responses fail immediately
// and 404 means the platform has no results.
func (c *Client) Search(ctx context.Context, query string) ([]domain.RawRecord, error) {
	reqURL, err := c.searchURL(query)
	if err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("platform", string(c.platform)), zap.String("query", query))

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, c.backoff(attempt-1)); err != nil {
				return nil, eris.Wrap(err, "source: wait for retry")
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "source: rate limiter")
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrap(ctx.Err(), "source: request cancelled")
			}
			log.Debug("source request error", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			continue
		}

		body, readErr := readLimitedBody(resp.Body, maxBodyBytes)
		resp.Body.Close()
		if readErr != nil {
			lastErr = eris.Wrapf(domain.ErrSourceFailure, "read body: %v", readErr)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusNotFound:
			return []domain.RawRecord{}, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			log.Debug("source throttled", zap.Int("attempt", attempt))
			lastErr = eris.Wrap(domain.ErrRateLimited, "status 429")
			continue
		case resp.StatusCode >= 500:
			log.Debug("source retryable status", zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			lastErr = eris.Wrapf(domain.ErrSourceFailure, "status %d", resp.StatusCode)
			continue
		default:
			return nil, eris.Wrapf(domain.ErrSourceFailure, "status %d", resp.StatusCode)
		}

		var doc interface{}
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, eris.Wrap(err, "source: decode response")
		}

		records := ExtractRecords(doc, c.platform, c.baseURL)
		log.Debug("source records extracted", zap.Int("records", len(records)))
		return records, nil
	}

	return nil, eris.Wrapf(lastErr, "source: %d attempts failed", c.maxRetries)
}

func (c *Client) searchURL(query string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", eris.Wrapf(domain.ErrSourceFailure, "invalid base url %q", c.baseURL)
	}
	params := u.Query()
	params.Set("q", query)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrapf(domain.ErrSourceFailure, "%v", err)
	}
	return resp, nil
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

// readLimitedBody reads at most limit bytes, failing when the body is larger
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return body, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
