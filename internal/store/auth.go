package store

import (
	"encoding/json"
	"fmt"

	"github.com/Rrens/assistant-cli/internal/domain"
	"github.com/Rrens/assistant-cli/internal/kvstore"
)

// Durable keys for the auth identity. Both must be present and parseable
// for a stored identity to be trusted on restore.
const (
	keyToken = "token"
	keyUser  = "user"
)

// Auth is the current identity. A zero Token means anonymous.
type Auth struct {
	Token string
	User  *domain.User
}

// AuthStore holds the current credential/user identity and mirrors it to
// durable storage so it survives process restarts.
type AuthStore struct {
	state *Store[Auth]
	kv    kvstore.Store
}

// NewAuthStore creates an anonymous auth store backed by kv.
func NewAuthStore(kv kvstore.Store) *AuthStore {
	return &AuthStore{
		state: New(Auth{}),
		kv:    kv,
	}
}

// State exposes the identity for subscription.
func (a *AuthStore) State() *Store[Auth] {
	return a.state
}

// Init restores the identity from durable storage. Missing, partial or
// malformed stored data is treated as "no identity", never as an error.
// It reports whether an identity was restored.
func (a *AuthStore) Init() bool {
	token, okToken, err := a.kv.Get(keyToken)
	if err != nil || !okToken || token == "" {
		return false
	}

	raw, okUser, err := a.kv.Get(keyUser)
	if err != nil || !okUser {
		return false
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return false
	}

	a.state.Set(Auth{Token: token, User: &user})
	return true
}

// SetAuth stores the identity in memory and durably. Both keys are written
// together so a restore never sees one without the other.
func (a *AuthStore) SetAuth(token string, user domain.User) error {
	a.state.Set(Auth{Token: token, User: &user})

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}
	if err := a.kv.Set(keyToken, token); err != nil {
		return err
	}
	return a.kv.Set(keyUser, string(raw))
}

// Clear removes the identity from memory and durable storage.
func (a *AuthStore) Clear() error {
	a.state.Set(Auth{})

	if err := a.kv.Delete(keyToken); err != nil {
		return err
	}
	return a.kv.Delete(keyUser)
}

// Token returns the current bearer token, empty when anonymous.
func (a *AuthStore) Token() string {
	return a.state.Get().Token
}

// IsAuthenticated reports whether an identity is present.
func (a *AuthStore) IsAuthenticated() bool {
	return a.state.Get().Token != ""
}
