package assistant

import (
	"context"

	"github.com/Rrens/assistant-cli/internal/domain"
)

// LoadSessions refreshes the local session list from the backend.
func (o *Orchestrator) LoadSessions(ctx context.Context) error {
	list, err := o.client.ListSessions(ctx)
	if err != nil {
		return err
	}
	o.chat.SetSessions(list)
	return nil
}

// OpenSession fetches a session's history and makes it the active session.
func (o *Orchestrator) OpenSession(ctx context.Context, id string) error {
	s, err := o.client.GetSession(ctx, id)
	if err != nil {
		return err
	}
	o.chat.SetActive(s.ID, s.Messages)
	return nil
}

// NewChat clears the active session so the next question starts a new one.
func (o *Orchestrator) NewChat() {
	o.chat.ClearActive()
	o.machine.Reset()
}

// CreateSession creates a session on the backend and makes it active.
func (o *Orchestrator) CreateSession(ctx context.Context, title string) (*domain.Session, error) {
	s, err := o.client.CreateSession(ctx, title)
	if err != nil {
		return nil, err
	}
	o.chat.AddSession(*s)
	o.chat.SetActive(s.ID, nil)
	return s, nil
}

// RenameSession updates a session's title on the backend and merges the
// result into the cached entry.
func (o *Orchestrator) RenameSession(ctx context.Context, id, title string) error {
	s, err := o.client.RenameSession(ctx, id, title)
	if err != nil {
		return err
	}
	o.chat.UpdateSession(id, domain.SessionPatch{
		Title:     &s.Title,
		UpdatedAt: &s.UpdatedAt,
	})
	return nil
}

// DeleteSession removes a session on the backend and locally.
func (o *Orchestrator) DeleteSession(ctx context.Context, id string) error {
	if err := o.client.DeleteSession(ctx, id); err != nil {
		return err
	}
	o.chat.RemoveSession(id)
	return nil
}

// ListAgents returns the backend's agent catalog.
func (o *Orchestrator) ListAgents(ctx context.Context) ([]domain.AgentInfo, error) {
	return o.client.ListAgents(ctx)
}

// Login authenticates and stores the identity, then loads the account's
// sessions.
func (o *Orchestrator) Login(ctx context.Context, email, password string) (*domain.User, error) {
	resp, err := o.client.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := o.auth.SetAuth(resp.AccessToken, resp.User); err != nil {
		return nil, err
	}
	if err := o.LoadSessions(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("failed to load sessions after login")
	}
	return &resp.User, nil
}

// Signup registers an account and stores the returned identity.
func (o *Orchestrator) Signup(ctx context.Context, email, username, password string) (*domain.User, error) {
	resp, err := o.client.Signup(ctx, domain.SignupRequest{
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if err := o.auth.SetAuth(resp.AccessToken, resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout clears the identity and all chat state.
func (o *Orchestrator) Logout() error {
	err := o.auth.Clear()
	o.chat.ClearAll()
	o.machine.Reset()
	return err
}
