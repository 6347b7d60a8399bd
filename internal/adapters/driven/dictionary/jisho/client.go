// Package jisho provides a driven.Dictionary backed by the jisho.org
// word search API.
package jisho

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ankify-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Dictionary = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL           = "https://jisho.org/api/v1/search/words"
	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 5
	DefaultRetryDelay        = 500 * time.Millisecond
)

// userAgent identifies the client to the API.
const userAgent = "ankify-cli"

// Config holds configuration for the Jisho client.
type Config struct {
	// BaseURL is the word search endpoint (default: DefaultBaseURL).
	BaseURL string

	// Timeout bounds each HTTP request (default: 10s).
	Timeout time.Duration

	// RequestsPerSecond throttles requests (default: 5).
	RequestsPerSecond float64

	// Burst is the number of requests allowed at once (default: 5).
	Burst int

	// RetryDelay is the pause before the single retry (default: 500ms).
	RetryDelay time.Duration
}

// Client looks terms up on jisho.org.
type Client struct {
	client     *http.Client
	baseURL    string
	limiter    *RateLimiter
	retryDelay time.Duration
}

// searchResponse is the API response format.
type searchResponse struct {
	Meta struct {
		Status int `json:"status"`
	} `json:"meta"`
	Data []domain.RawDictRecord `json:"data"`
}

// statusError is a non-200 response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("jisho error (status %d)", e.code)
	}
	return fmt.Sprintf("jisho error (status %d): %s", e.code, e.body)
}

// NewClient creates a Jisho client. Zero config values use defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}

	return &Client{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		limiter:    NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
		retryDelay: cfg.RetryDelay,
	}
}

// Lookup searches for term. A term the API does not know is not OK and is
// not an error. Server errors and network failures are retried once.
func (c *Client) Lookup(ctx context.Context, term string) (domain.LookupResponse, error) {
	keyword := norm.NFC.String(strings.TrimSpace(term))
	if keyword == "" {
		return domain.LookupResponse{OK: false}, nil
	}

	resp, err := c.search(ctx, keyword)
	if err != nil && retryable(ctx, err) {
		logger.Debug("Retrying %q after %v", keyword, err)
		timer := time.NewTimer(c.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return domain.LookupResponse{}, ctx.Err()
		case <-timer.C:
		}
		resp, err = c.search(ctx, keyword)
	}
	return resp, err
}

// retryable reports whether err is a 5xx or a network failure that was not
// caused by the caller giving up.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

func (c *Client) search(ctx context.Context, keyword string) (domain.LookupResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.LookupResponse{}, err
	}

	u := c.baseURL + "?" + url.Values{"keyword": {keyword}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.LookupResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.LookupResponse{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.LookupResponse{OK: false}, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		wait := c.limiter.Backoff(resp.Header)
		return domain.LookupResponse{}, fmt.Errorf("%w: retry in %s", domain.ErrRateLimited, wait)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.LookupResponse{}, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return domain.LookupResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if sr.Meta.Status == http.StatusNotFound || len(sr.Data) == 0 {
		return domain.LookupResponse{OK: false}, nil
	}
	if sr.Meta.Status != 0 && sr.Meta.Status != http.StatusOK {
		return domain.LookupResponse{}, &statusError{code: sr.Meta.Status}
	}
	return domain.FoundResponse(sr.Data), nil
}
