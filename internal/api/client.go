// Package api contains the low-level HTTP client for the verification
// intake service. Typed operations live in internal/requests.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// RequestError describes a non-2xx response from the intake service.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// Client performs JSON calls against a single configured endpoint. The
// base URL is injected at construction; nothing is read from ambient
// environment at call time. A cookie jar is always attached so session
// credentials issued by the server ride along on every call.
type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// NewClient constructs a client for the given base endpoint.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: make(map[string]string),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		// cookiejar.New never fails with nil options.
		jar, _ := cookiejar.New(nil)
		c.httpClient.Jar = jar
	}
	return c
}

// BaseURL returns the configured endpoint without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Do issues a JSON request and decodes the response into out. A 204 or
// an empty body leaves out untouched and returns nil; callers that
// expect no payload pass a nil out. Non-2xx statuses come back as a
// *RequestError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the most specific failure description available:
// the detail field of a JSON error body, then the raw body text, then a
// generic status message. Read or parse failures here must never mask
// the HTTP failure itself.
func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(resp.Body)
	if err == nil {
		var parsed struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &parsed) == nil && parsed.Detail != "" {
			return parsed.Detail
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			return text
		}
	}
	return fmt.Sprintf("HTTP error %d", resp.StatusCode)
}
