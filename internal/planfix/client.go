// Package planfix is a typed client for the Planfix REST API. It owns one
// authenticated HTTP session per account, retries transient failures with
// exponential backoff, paginates list operations, and maps wire payloads into
// domain models.
package planfix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultMaxAttempts    = 4
	defaultMaxPageSize    = 100
	defaultListLimit      = 20

	userAgent = "planfix-mcp/" + Version
)

// Version identifies the client to the remote service.
const Version = "0.1.0"

// Config configures the API client.
type Config struct {
	// Account is the Planfix account name. Required.
	Account string
	// APIKey authenticates every request. Required.
	APIKey string
	// BaseURL overrides the derived https://{account}.planfix.ru/rest.
	BaseURL string
	// Debug enables request/response logging.
	Debug bool
	// RequestTimeout bounds a single HTTP attempt. Defaults to 30s.
	RequestTimeout time.Duration
	// MaxAttempts is the total attempt budget per request, including the
	// first try. Defaults to 4.
	MaxAttempts int
	// MaxPageSize caps the page size of a single list request. Defaults
	// to 100; callers asking for more get successive pages.
	MaxPageSize int
	// HTTPClient substitutes the underlying session, for tests.
	HTTPClient *http.Client
	// Pager substitutes the pagination strategy. Defaults to OffsetPager.
	Pager Pager
}

// Client is a Planfix API session. It is safe for concurrent use: the
// underlying http.Client pools connections and all client state is immutable
// after construction.
type Client struct {
	baseURL     string
	apiKey      string
	debug       bool
	maxAttempts int
	maxPageSize int
	pager       Pager
	httpc       *http.Client

	// retryInterval seeds the exponential backoff schedule.
	retryInterval time.Duration
}

// New validates the configuration and constructs a client. No network call is
// made; credential problems are reported here so they surface before the
// first operation.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Account) == "" && strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, NewError(CategoryConfiguration, "planfix account is not configured")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, NewError(CategoryConfiguration, "planfix API key is not configured")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.planfix.ru/rest", cfg.Account)
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, NewError(CategoryConfiguration, "invalid base URL %q", baseURL)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: timeout}
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	maxPageSize := cfg.MaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = defaultMaxPageSize
	}
	pager := cfg.Pager
	if pager == nil {
		pager = OffsetPager{}
	}

	return &Client{
		baseURL:       baseURL,
		apiKey:        cfg.APIKey,
		debug:         cfg.Debug,
		maxAttempts:   maxAttempts,
		maxPageSize:   maxPageSize,
		pager:         pager,
		httpc:         httpc,
		retryInterval: 500 * time.Millisecond,
	}, nil
}

// Close releases pooled connections. The client must not be used afterwards.
func (c *Client) Close() {
	c.httpc.CloseIdleConnections()
}

// TestConnection issues a minimal authenticated request so startup can fail
// fast on bad credentials.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "contact/list",
		body:   map[string]any{"pageSize": 1},
	})
	return err
}

// apiRequest describes one logical API call before retry handling.
type apiRequest struct {
	method string
	path   string
	query  url.Values
	body   any

	// write marks operations with remote side effects. Writes are not
	// retried on 5xx unless idempotencyKey is set, to avoid duplicates.
	write          bool
	idempotencyKey string
}

// do sends the request with retry/backoff and returns the raw response body.
// 4xx responses (except 429) surface immediately; 5xx, rate limits, and
// transport errors are retried within the attempt budget when safe.
func (c *Client) do(ctx context.Context, r apiRequest) ([]byte, error) {
	requestID := uuid.NewString()
	retryable := !r.write || r.idempotencyKey != ""

	operation := func() ([]byte, error) {
		body, err := c.send(ctx, r, requestID)
		if err == nil {
			return body, nil
		}
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			return nil, backoff.Permanent(err)
		}
		switch {
		case apiErr.retryAfter > 0:
			return nil, &backoff.RetryAfterError{Duration: apiErr.retryAfter}
		case apiErr.rateLimited:
			// 429 without a hint falls back to the backoff schedule.
			return nil, err
		case apiErr.Category == CategoryRemoteUnavailable && retryable:
			return nil, err
		default:
			return nil, backoff.Permanent(err)
		}
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.retryInterval
	expo.MaxInterval = 10 * time.Second

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(uint(c.maxAttempts)),
	)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Category: CategoryRemoteUnavailable, Message: "request canceled", err: err}
		}
		return nil, &Error{Category: CategoryRemoteUnavailable, Message: "request failed", err: err}
	}
	return body, nil
}

// send performs a single HTTP attempt and classifies the response.
func (c *Client) send(ctx context.Context, r apiRequest, requestID string) ([]byte, error) {
	var reader io.Reader
	if r.body != nil {
		encoded, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if r.idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", r.idempotencyKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logf("planfix %s %s failed: transport error", r.method, r.path)
		return nil, &Error{Category: CategoryRemoteUnavailable, Message: "planfix is unreachable", err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Category: CategoryRemoteUnavailable, Message: "read response body", err: err}
	}
	c.logf("planfix %s %s -> %d", r.method, r.path, resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, NewError(CategoryRemoteRejected, "planfix rejected the API credentials")
	case resp.StatusCode == http.StatusForbidden:
		return nil, NewError(CategoryRemoteRejected, "insufficient permissions for this operation")
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewError(CategoryNotFound, "%s", remoteMessage(body, resp.StatusCode))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &Error{
			Category:    CategoryRemoteUnavailable,
			Message:     "planfix rate limit exceeded",
			rateLimited: true,
			retryAfter:  retryAfterHint(resp.Header),
		}
	case resp.StatusCode >= 500:
		return nil, NewError(CategoryRemoteUnavailable, "planfix returned HTTP %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, NewError(CategoryRemoteRejected, "%s", remoteMessage(body, resp.StatusCode))
	}
	return body, nil
}

// retryAfterHint parses a Retry-After header as delay seconds or HTTP date.
// Absent, malformed, or already-elapsed hints yield zero; the caller then
// falls back to the regular backoff schedule.
func retryAfterHint(header http.Header) time.Duration {
	value := strings.TrimSpace(header.Get("Retry-After"))
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return 0
}

// fieldsQuery builds the ?fields= selector used by GET endpoints.
func fieldsQuery(fields string) url.Values {
	return url.Values{"fields": []string{fields}}
}

func (c *Client) logf(format string, args ...any) {
	if c.debug {
		log.Printf(format, args...)
	}
}
