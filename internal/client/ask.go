package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/Rrens/assistant-cli/internal/domain"
)

// AskText submits a text question to the multi-agent pipeline.
func (c *Client) AskText(ctx context.Context, req domain.AskRequest) (*domain.AskResponse, error) {
	var out domain.AskResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/ask/text/detailed", req, &out, "Failed to get response"); err != nil {
		return nil, err
	}
	return &out, nil
}

// AskVoice submits recorded audio as a multipart form. The transcript comes
// back in the response's question field.
func (c *Client) AskVoice(ctx context.Context, audio []byte, extension, sessionID string) (*domain.AskResponse, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("audio", "recording"+extension)
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if sessionID != "" {
		if err := form.WriteField("session_id", sessionID); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ask/voice/detailed", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var out domain.AskResponse
	if err := c.do(req, &out, "Failed to process audio"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAgents returns the backend's agent catalog.
func (c *Client) ListAgents(ctx context.Context) ([]domain.AgentInfo, error) {
	var out struct {
		Agents []domain.AgentInfo `json:"agents"`
	}
	if err := c.getJSON(ctx, "/api/agents", &out, "Failed to fetch agents"); err != nil {
		return nil, err
	}
	return out.Agents, nil
}
