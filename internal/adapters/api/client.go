package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 10 * time.Second
)

// Error is a non-2xx answer from the backend. Message holds the server's
// detail field when present, otherwise the per-call fallback.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// CallRecorder receives one observation per backend call.
type CallRecorder interface {
	RecordAPICall(ctx context.Context, op string, status int, elapsed time.Duration)
}

type Client struct {
	baseURL  string
	http     *http.Client
	token    string
	recorder CallRecorder
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithToken sets the bearer token used when the request context carries none.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithRecorder(r CallRecorder) Option {
	return func(c *Client) { c.recorder = r }
}

func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBearer attaches the caller's ID token to ctx; it wins over WithToken.
func WithBearer(ctx context.Context, token string) context.Context {
	return domain.ContextWithBearer(ctx, token)
}

func userPath(userID string, parts ...string) string {
	p := "/users/" + url.PathEscape(userID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := domain.BearerFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.record(ctx, op, 0, start)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	c.record(ctx, op, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp, fallback)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) record(ctx context.Context, op string, status int, start time.Time) {
	if c.recorder != nil {
		c.recorder.RecordAPICall(ctx, op, status, time.Since(start))
	}
}

// errorMessage prefers the JSON detail field. Validation errors come back with
// a structured detail, which is passed through as raw JSON.
func errorMessage(resp *http.Response, fallback string) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Detail) > 0 && string(payload.Detail) != "null" {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			if s != "" {
				return s
			}
		} else {
			return string(payload.Detail)
		}
	}

	return fmt.Sprintf("%s: %s", fallback, http.StatusText(resp.StatusCode))
}
