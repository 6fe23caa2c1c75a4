package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rrens/assistant-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sessions", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Session{
			{ID: "s2", Title: "newer"},
			{ID: "s1", Title: "older"},
		})
	}))
	defer srv.Close()

	f := newFixture(srv.URL)
	require.NoError(t, f.orchestrator.LoadSessions(context.Background()))

	sessions := f.chat.Sessions().Get()
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].ID)
}

func TestOpenSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sessions/s1", r.URL.Path)
		json.NewEncoder(w).Encode(domain.SessionWithMessages{
			Session: domain.Session{ID: "s1", Title: "mine"},
			Messages: []domain.Message{
				{ID: "m1", Role: domain.RoleUser, Content: "hi"},
				{ID: "m2", Role: domain.RoleAssistant, Content: "hello"},
			},
		})
	}))
	defer srv.Close()

	f := newFixture(srv.URL)
	require.NoError(t, f.orchestrator.OpenSession(context.Background(), "s1"))

	assert.Equal(t, "s1", f.chat.ActiveID())
	assert.Len(t, f.chat.Messages().Get(), 2)
}

func TestNewChat(t *testing.T) {
	f := newFixture("http://unused")
	f.chat.SetActive("s1", []domain.Message{{ID: "m1"}})
	f.machine.Fail("stale")

	f.orchestrator.NewChat()

	assert.Equal(t, "", f.chat.ActiveID())
	assert.Empty(t, f.chat.Messages().Get())
	assert.Equal(t, StageIdle, f.machine.Stage().Get().ID)
	assert.Equal(t, "", f.machine.Error().Get())
}

func TestDeleteSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(map[string]string{"message": "Session deleted successfully"})
	}))
	defer srv.Close()

	f := newFixture(srv.URL)
	f.chat.SetSessions([]domain.Session{{ID: "s1"}, {ID: "s2"}})
	f.chat.SetActive("s1", []domain.Message{{ID: "m1"}})

	require.NoError(t, f.orchestrator.DeleteSession(context.Background(), "s1"))

	assert.Len(t, f.chat.Sessions().Get(), 1)
	assert.Equal(t, "", f.chat.ActiveID())
	assert.Empty(t, f.chat.Messages().Get())
}

func TestRenameSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		var body domain.SessionCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(domain.Session{ID: "s2", Title: body.Title, UpdatedAt: "t1"})
	}))
	defer srv.Close()

	f := newFixture(srv.URL)
	f.chat.SetSessions([]domain.Session{{ID: "s1"}, {ID: "s2", Title: "old"}})

	require.NoError(t, f.orchestrator.RenameSession(context.Background(), "s2", "new title"))

	sessions := f.chat.Sessions().Get()
	// Position preserved, fields merged
	assert.Equal(t, "s2", sessions[1].ID)
	assert.Equal(t, "new title", sessions[1].Title)
	assert.Equal(t, "t1", sessions[1].UpdatedAt)
}

func TestLoginStoresIdentityAndLoadsSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(domain.TokenResponse{
				AccessToken: "tok-1",
				TokenType:   "bearer",
				User:        domain.User{ID: "u1", Email: "a@b.c", Username: "alice"},
			})
		case "/api/sessions":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode([]domain.Session{{ID: "s1"}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	f := newFixture(srv.URL)
	user, err := f.orchestrator.Login(context.Background(), "a@b.c", "secret-pass")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.True(t, f.auth.IsAuthenticated())
	assert.Len(t, f.chat.Sessions().Get(), 1)
}

func TestLogoutClearsEverything(t *testing.T) {
	f := newFixture("http://unused")
	require.NoError(t, f.auth.SetAuth("tok", domain.User{ID: "u1"}))
	f.chat.SetSessions([]domain.Session{{ID: "s1"}})
	f.chat.SetActive("s1", []domain.Message{{ID: "m1"}})

	require.NoError(t, f.orchestrator.Logout())

	assert.False(t, f.auth.IsAuthenticated())
	assert.Empty(t, f.chat.Sessions().Get())
	assert.Equal(t, "", f.chat.ActiveID())
	assert.Empty(t, f.chat.Messages().Get())
}
