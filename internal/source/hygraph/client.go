package hygraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"blog_server/internal/domain"
)

// Config holds content API client configuration.
type Config struct {
	Endpoint     string
	Token        string
	Timeout      time.Duration
	InstantLimit int
	SearchLimit  int
	RelatedLimit int
}

// Client issues GraphQL queries against the hosted content API.
// Construction never fails: a client missing its endpoint or token is
// degraded and every call returns domain.ErrNotConfigured. This is
// logged once here, not per call.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	token        string
	instantLimit int
	searchLimit  int
	relatedLimit int
	logger       *slog.Logger
}

// New creates a new content API client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Endpoint == "" || cfg.Token == "" {
		logger.Warn("content API endpoint or token missing, all content queries will fail")
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		endpoint:     cfg.Endpoint,
		token:        cfg.Token,
		instantLimit: cfg.InstantLimit,
		searchLimit:  cfg.SearchLimit,
		relatedLimit: cfg.RelatedLimit,
		logger:       logger.With("source", "hygraph"),
	}
}

// RequestError describes a failed content API call: network error,
// authorization error, or malformed response.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do posts one query and decodes the data tree into out. No retries:
// a single failed call surfaces immediately to the caller.
func (c *Client) do(ctx context.Context, op, query string, variables map[string]any, out any) error {
	if c.endpoint == "" || c.token == "" {
		return &RequestError{Op: op, Err: domain.ErrNotConfigured}
	}

	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RequestError{Op: op, Status: resp.StatusCode}
	}

	var gqlResp gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			msgs[i] = e.Message
		}
		return &RequestError{Op: op, Err: fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))}
	}

	if out != nil {
		if err := json.Unmarshal(gqlResp.Data, out); err != nil {
			return &RequestError{Op: op, Err: fmt.Errorf("decode data: %w", err)}
		}
	}

	return nil
}
