package client

import (
	"context"
	"net/http"

	"github.com/Rrens/assistant-cli/internal/domain"
)

// ListSessions returns the caller's sessions, newest first.
func (c *Client) ListSessions(ctx context.Context) ([]domain.Session, error) {
	var out []domain.Session
	if err := c.getJSON(ctx, "/api/sessions", &out, "Failed to fetch sessions"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSession returns a session together with its message history.
func (c *Client) GetSession(ctx context.Context, id string) (*domain.SessionWithMessages, error) {
	var out domain.SessionWithMessages
	if err := c.getJSON(ctx, "/api/sessions/"+id, &out, "Failed to fetch session"); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSession creates a new session with the given title.
func (c *Client) CreateSession(ctx context.Context, title string) (*domain.Session, error) {
	if title == "" {
		title = "New Chat"
	}

	var out domain.Session
	body := domain.SessionCreate{Title: title}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/sessions", body, &out, "Failed to create session"); err != nil {
		return nil, err
	}
	return &out, nil
}

// RenameSession updates a session's title.
func (c *Client) RenameSession(ctx context.Context, id, title string) (*domain.Session, error) {
	var out domain.Session
	body := domain.SessionCreate{Title: title}
	if err := c.sendJSON(ctx, http.MethodPatch, "/api/sessions/"+id, body, &out, "Failed to update session"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSession removes a session and its messages on the backend.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/sessions/"+id, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil, "Failed to delete session")
}
