package api

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
)

// AuthError indicates that the session's bearer token was rejected.
// It is returned on any 401 response outside the login endpoint.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

// Client is a thin HTTP client for the SchoolQuest API. It attaches
// Bearer authentication to every request, logs failures with
// method/URL/status/body, and invalidates the session on any 401
// response outside the login endpoint.
type Client struct {
	baseURL    string
	token      TokenSource
	onAuthLost func()
	httpClient *http.Client
	logger     *log.Logger
	maxRetries int
}

// NewClient creates a new SchoolQuest API client. The baseURL is the
// root URL of the API (e.g. http://localhost:8000). The token source
// is consulted per request so a login during the session takes effect
// immediately.
func NewClient(baseURL string, token TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger:     log.Default(),
		maxRetries: 3,
	}
}

// BaseURL returns the configured API root URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnAuthLost registers the callback invoked when a 401 response forces
// a logout. The login endpoint itself never triggers it.
func (c *Client) OnAuthLost(fn func()) {
	c.onAuthLost = fn
}

// SetLogger replaces the logger used for request failures.
func (c *Client) SetLogger(l *log.Logger) {
	c.logger = l
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// Post performs an HTTP POST request with a JSON body and unmarshals
// the JSON response.
func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// Put performs an HTTP PUT request with a JSON body and unmarshals
// the JSON response.
func (c *Client) Put(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// PostForm performs an HTTP POST with a urlencoded form body. The API
// uses this shape only for the login endpoint.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, result interface{}) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, http.MethodPost, path, result)
}

// do is the core JSON method that builds the request, handles auth,
// rate limiting with exponential backoff, and JSON (de)serialization.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var bodyReader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("marshaling request body: %w", err)
			}
			bodyReader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(
			ctx, method, c.baseURL+path, bodyReader,
		)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		err = c.send(req, method, path, result)
		if err == nil {
			return nil
		}

		var rateErr *rateLimitError
		if errors.As(err, &rateErr) {
			lastErr = err
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(rateErr.wait(attempt)):
				continue
			}
		}

		return err
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

// send executes a single prepared request, attaching the bearer token
// and applying the shared response handling.
func (c *Client) send(req *http.Request, method, path string, result interface{}) error {
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &rateLimitError{retryAfter: resp.Header.Get("Retry-After")}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// A rejected token anywhere but the login endpoint invalidates
		// the whole session.
		if !strings.Contains(path, "/auth/token") && c.onAuthLost != nil {
			c.onAuthLost()
		}
		c.logError(method, path, resp.StatusCode, respBody)
		return &AuthError{Message: apiDetail(respBody, "token rejected")}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logError(method, path, resp.StatusCode, respBody)
		return fmt.Errorf(
			"api error (%d) on %s %s: %s",
			resp.StatusCode, method, path,
			apiDetail(respBody, strings.TrimSpace(string(respBody))),
		)
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}

	return nil
}

// logError records a failed request with enough context to debug it.
func (c *Client) logError(method, path string, status int, body []byte) {
	if c.logger == nil {
		return
	}
	c.logger.Printf(
		"api: %s %s failed: status=%d body=%s",
		method, path, status, strings.TrimSpace(string(body)),
	)
}

// apiDetail extracts the server's {"detail": ...} message, falling
// back to the given default.
func apiDetail(body []byte, fallback string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fallback
}

// rateLimitError carries the Retry-After hint from a 429 response.
type rateLimitError struct {
	retryAfter string
}

func (e *rateLimitError) Error() string {
	return "rate limited (429)"
}

// wait computes the backoff before the next attempt, honoring the
// Retry-After header when present.
func (e *rateLimitError) wait(attempt int) time.Duration {
	if e.retryAfter != "" {
		if seconds, err := strconv.Atoi(e.retryAfter); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
