// Package api is the HTTP client for the profile service consumed by the
// form: the occupation list and profile creation endpoints.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-profileform/pkg/profile"
)

// DefaultBaseURL is the profile service address used when none is configured.
const DefaultBaseURL = "http://localhost:8081"

const (
	OccupationsPath = "/api/occupations"
	ProfilesPath    = "/api/profiles"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("api: unexpected status %d", e.Code)
}

// Client talks to the profile service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(base); trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithHTTPClient sets the transport client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a Client.
func New(options ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// BaseURL reports the service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Occupations fetches the selectable occupation values.
func (c *Client) Occupations(ctx context.Context) ([]string, error) {
	var out profile.OccupationList
	if err := c.do(ctx, http.MethodGet, OccupationsPath, nil, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		return nil, fmt.Errorf("api: occupations response missing items")
	}
	return out.Items, nil
}

// CreateProfile submits payload and returns the created id and message.
func (c *Client) CreateProfile(ctx context.Context, payload profile.Payload) (profile.Created, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return profile.Created{}, fmt.Errorf("api: encode payload: %w", err)
	}
	var out profile.Created
	if err := c.do(ctx, http.MethodPost, ProfilesPath, body, &out); err != nil {
		return profile.Created{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("api: build url: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.Error(err),
		)
		return fmt.Errorf("api: do request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api response",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode: %w", err)
	}
	return nil
}
