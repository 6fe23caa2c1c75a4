// Package client is the typed HTTP client for the assistant backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Rrens/assistant-cli/internal/config"
	"github.com/rs/zerolog"
)

// Client issues requests against the assistant API. A token provider is
// injected so the auth store stays the single owner of the identity; an
// empty token means the request goes out anonymously.
type Client struct {
	baseURL string
	http    *http.Client
	token   func() string
	logger  zerolog.Logger
}

// New creates a client for the configured base URL.
func New(cfg config.APIConfig, token func() string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		token:   token,
		logger:  logger,
	}
}

// getJSON performs an authenticated GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any, fallback string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out, fallback)
}

// sendJSON performs a JSON POST/PATCH and decodes the response into out.
func (c *Client) sendJSON(ctx context.Context, method, path string, body any, out any, fallback string) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out, fallback)
}

// do sends the request with the bearer header when authenticated, maps
// non-2xx responses to an APIError and decodes success bodies into out.
func (c *Client) do(req *http.Request, out any, fallback string) error {
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, fallback)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError extracts the backend's detail message from an error body,
// falling back to the per-endpoint message when it is absent or unreadable.
func decodeError(resp *http.Response, fallback string) error {
	detail := fallback

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
			detail = payload.Detail
		}
	}

	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}
