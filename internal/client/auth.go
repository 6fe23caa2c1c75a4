package client

import (
	"context"
	"net/http"

	"github.com/Rrens/assistant-cli/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Signup registers a new account. Input is validated locally before the
// request goes out.
func (c *Client) Signup(ctx context.Context, input domain.SignupRequest) (*domain.TokenResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var out domain.TokenResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/signup", input, &out, "Signup failed"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token and user record.
func (c *Client) Login(ctx context.Context, input domain.LoginRequest) (*domain.TokenResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var out domain.TokenResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/login", input, &out, "Login failed"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.getJSON(ctx, "/api/auth/me", &out, "Not authenticated"); err != nil {
		return nil, err
	}
	return &out, nil
}
