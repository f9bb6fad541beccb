// Package todoapi implements the service.Service interface over the todo REST API.
package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"todoview/internal/config"
	"todoview/internal/service"
)

const (
	// RequestIDHeader carries a per-call correlation id.
	RequestIDHeader = "X-Request-Id"

	// maxErrorBody caps how much of a failed response is read for its message.
	maxErrorBody = 64 << 10
)

// Client implements service.Service against a todo API base URL.
type Client struct {
	http *http.Client
	base *url.URL
}

// New creates a client from config.
// A configured token is attached as a bearer token on every request.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = cfg.Timeout
	}
	return NewWithHTTPClient(cfg.APIURL, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, base: base}, nil
}

// ListTasks returns all tasks in server order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, OpList, http.MethodGet, c.endpoint("todos"), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Statistics returns the server-computed counts.
func (c *Client) Statistics(ctx context.Context) (service.Statistics, error) {
	var stats service.Statistics
	if err := c.do(ctx, OpStatistics, http.MethodGet, c.endpoint("todos", "statistics"), nil, &stats); err != nil {
		return service.Statistics{}, err
	}
	return stats, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, t service.NewTask) (service.Task, error) {
	var created service.Task
	if err := c.do(ctx, OpCreate, http.MethodPost, c.endpoint("todos"), t, &created); err != nil {
		return service.Task{}, err
	}
	return created, nil
}

// ToggleTask flips a task's completion flag.
func (c *Client) ToggleTask(ctx context.Context, id service.ID) (service.Task, error) {
	var updated service.Task
	if err := c.do(ctx, OpToggle, http.MethodPost, c.endpoint("todos", id.String(), "toggle"), nil, &updated); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// DeleteTask deletes a task. The response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id service.ID) error {
	return c.do(ctx, OpDelete, http.MethodDelete, c.endpoint("todos", id.String()), nil, nil)
}

// endpoint appends escaped segments and a trailing slash to the base URL.
// Segments are never resolved, so an id of "." or ".." stays inside todos/.
func (c *Client) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.base.String())
	for _, seg := range segments {
		b.WriteString(escapeSegment(seg))
		b.WriteByte('/')
	}
	return b.String()
}

// escapeSegment path-escapes s, and also encodes dot segments, which
// url.PathEscape leaves alone.
func escapeSegment(s string) string {
	if s == "." || s == ".." {
		return strings.Repeat("%2E", len(s))
	}
	return url.PathEscape(s)
}

// do performs exactly one round trip against target. A nil out skips decoding.
func (c *Client) do(ctx context.Context, op Op, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &FetchError{Op: op, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("invalid response: %w", err)}
	}
	return nil
}

// newStatusError reads the server's {"error": "..."} detail when present.
func newStatusError(op Op, resp *http.Response) *FetchError {
	fe := &FetchError{Op: op, Status: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		fe.Message = strings.TrimSpace(payload.Error)
	}
	return fe
}
