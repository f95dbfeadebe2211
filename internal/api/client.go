package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the backend used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// Client talks to the diagnostic backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// Questions fetches the survey statements in display order.
func (c *Client) Questions(ctx context.Context) ([]Question, error) {
	var out QuestionsResponse
	if err := c.do(ctx, OpQuestions, http.MethodGet, "/api/v1/questions", nil, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// Recommend submits one response per question, in question order.
// The raw body is returned alongside the decoded value so callers can
// persist it verbatim.
func (c *Client) Recommend(ctx context.Context, responses []ResponseOption) (*RecommendationResponse, []byte, error) {
	body, err := json.Marshal(RecommendationRequest{Responses: responses})
	if err != nil {
		return nil, nil, &Error{Op: OpRecommendations, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	var out RecommendationResponse
	raw, err := c.doRaw(ctx, OpRecommendations, http.MethodPost, "/api/v1/recommendations", body)
	if err != nil {
		return nil, nil, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, nil, &Error{Op: OpRecommendations, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &out, raw, nil
}

// Health checks that the backend answers with status "ok".
func (c *Client) Health(ctx context.Context) error {
	var out HealthResponse
	if err := c.do(ctx, OpHealth, http.MethodGet, "/api/v1/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return &Error{Op: OpHealth, Err: fmt.Errorf("unexpected status %q", out.Status)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out interface{}) error {
	raw, err := c.doRaw(ctx, op, method, path, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, op, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("request failed", "op", op, "path", path, "error", err)
		return nil, &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	c.log.Debugw("request complete", "op", op, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(data))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &Error{Op: op, Status: resp.StatusCode, Body: snippet, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	return data, nil
}
