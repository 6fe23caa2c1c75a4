package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rrens/assistant-cli/internal/client"
	"github.com/Rrens/assistant-cli/internal/config"
	"github.com/Rrens/assistant-cli/internal/domain"
	"github.com/Rrens/assistant-cli/internal/kvstore"
	"github.com/Rrens/assistant-cli/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	orchestrator *Orchestrator
	auth         *store.AuthStore
	chat         *store.ChatStore
	machine      *Machine
}

// newFixture wires an orchestrator against baseURL with zeroed stage delays.
func newFixture(baseURL string) *fixture {
	auth := store.NewAuthStore(kvstore.NewMemory())
	chat := store.NewChatStore()
	machine := NewMachine()

	api := client.New(
		config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		auth.Token,
		zerolog.Nop(),
	)

	return &fixture{
		orchestrator: NewOrchestrator(api, auth, chat, machine, config.StagesConfig{}, zerolog.Nop()),
		auth:         auth,
		chat:         chat,
		machine:      machine,
	}
}

// watchStages records every stage the machine passes through.
func (f *fixture) watchStages() *[]StageID {
	var seen []StageID
	f.machine.Stage().Subscribe(func(s Stage) {
		seen = append(seen, s.ID)
	})
	return &seen
}

func askHandler(t *testing.T, resp domain.AskResponse, gotReq *domain.AskRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/ask/text/detailed", r.URL.Path)
		if gotReq != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestAskText_AnonymousWithoutSession(t *testing.T) {
	var gotReq domain.AskRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		askHandler(t, domain.AskResponse{Answer: "Hi there", AgentUsed: "general"}, &gotReq)(w, r)
	}))
	defer srv.Close()

	f := newFixture(srv.URL)
	stages := f.watchStages()

	resp, err := f.orchestrator.AskText(context.Background(), "Hello")
	require.NoError(t, err)

	assert.Equal(t, "Hi there", resp.Answer)
	assert.Equal(t, "Hi there", f.machine.Answer().Get())
	assert.Equal(t, "general", f.machine.Agent().Get())
	assert.Equal(t, "Hello", f.machine.Question().Get())

	// Anonymous request: no auth header, no session id
	assert.Empty(t, gotAuth)
	assert.Equal(t, "Hello", gotReq.Question)
	assert.Empty(t, gotReq.SessionID)

	// No session_id in the response: the session list stays untouched
	assert.Empty(t, f.chat.Sessions().Get())
	assert.Empty(t, f.chat.Messages().Get())

	assert.Equal(t,
		[]StageID{StageIdle, StageRouting, StageProcessing, StageGenerating, StageComplete},
		*stages)
}

func TestAskText_NewSessionDerivesTitle(t *testing.T) {
	question := ""
	for i := 0; i < 73; i++ {
		question += "q"
	}

	srv := httptest.NewServer(askHandler(t, domain.AskResponse{
		Answer:    "answer",
		AgentUsed: "research",
		SessionID: "s1",
		MessageID: "m1",
		QueryType: "research",
	}, nil))
	defer srv.Close()

	f := newFixture(srv.URL)
	require.NoError(t, f.auth.SetAuth("tok", domain.User{ID: "u1"}))

	_, err := f.orchestrator.AskText(context.Background(), question)
	require.NoError(t, err)

	sessions := f.chat.Sessions().Get()
	require.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].ID)
	assert.Equal(t, question[:50]+"...", sessions[0].Title)
	assert.NotEmpty(t, sessions[0].CreatedAt)
	assert.Equal(t, "s1", f.chat.ActiveID())

	msgs := f.chat.Messages().Get()
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, question, msgs[0].Content)
	assert.Equal(t, "m1", msgs[1].ID)
	assert.Equal(t, "research", msgs[1].AgentUsed)
}

func TestAskText_ServerTitleWins(t *testing.T) {
	srv := httptest.NewServer(askHandler(t, domain.AskResponse{
		Answer:       "answer",
		SessionID:    "s1",
		SessionTitle: "Chosen by backend",
	}, nil))
	defer srv.Close()

	f := newFixture(srv.URL)
	_, err := f.orchestrator.AskText(context.Background(), "whatever")
	require.NoError(t, err)

	sessions := f.chat.Sessions().Get()
	require.Len(t, sessions, 1)
	assert.Equal(t, "Chosen by backend", sessions[0].Title)
}

func TestAskText_ExistingSessionAppendsOnly(t *testing.T) {
	var gotReq domain.AskRequest
	srv := httptest.NewServer(askHandler(t, domain.AskResponse{
		Answer:    "more",
		AgentUsed: "general",
		SessionID: "s1",
	}, &gotReq))
	defer srv.Close()

	f := newFixture(srv.URL)
	f.chat.SetSessions([]domain.Session{
		{ID: "s0", Title: "other", UpdatedAt: "t0"},
		{ID: "s1", Title: "mine", UpdatedAt: "t0"},
	})
	f.chat.SetActive("s1", []domain.Message{{ID: "old"}})

	_, err := f.orchestrator.AskText(context.Background(), "follow up")
	require.NoError(t, err)

	assert.Equal(t, "s1", gotReq.SessionID)

	sessions := f.chat.Sessions().Get()
	require.Len(t, sessions, 2)
	// No reordering: s1 stays in second position with a fresh updated_at
	assert.Equal(t, "s1", sessions[1].ID)
	assert.NotEqual(t, "t0", sessions[1].UpdatedAt)
	assert.Equal(t, "t0", sessions[0].UpdatedAt)

	assert.Len(t, f.chat.Messages().Get(), 3)
}

func TestAskText_BackendDetailPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Question cannot be empty"})
	}))
	defer srv.Close()

	f := newFixture(srv.URL)
	_, err := f.orchestrator.AskText(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, "Question cannot be empty", err.Error())
	assert.Equal(t, StageError, f.machine.Stage().Get().ID)
	assert.Equal(t, "Question cannot be empty", f.machine.Error().Get())
}

func TestAskText_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	f := newFixture(srv.URL)
	stages := f.watchStages()

	_, err := f.orchestrator.AskText(context.Background(), "Hello")

	require.Error(t, err)
	assert.Equal(t, StageError, f.machine.Stage().Get().ID)
	assert.Equal(t, err.Error(), f.machine.Error().Get())
	assert.NotEmpty(t, f.machine.Error().Get())

	// No store mutation on failure
	assert.Empty(t, f.chat.Sessions().Get())
	assert.Empty(t, f.chat.Messages().Get())

	assert.Equal(t, []StageID{StageIdle, StageRouting, StageError}, *stages)
}

func TestAskVoice_ExistingSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/ask/voice/detailed", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("audio")
		require.NoError(t, err)
		file.Close()
		assert.Equal(t, "recording.webm", header.Filename)
		assert.Equal(t, "s9", r.FormValue("session_id"))

		json.NewEncoder(w).Encode(domain.AskResponse{
			Question:  "what is 2+2",
			Answer:    "4",
			AgentUsed: "math",
			SessionID: "s9",
		})
	}))
	defer srv.Close()

	f := newFixture(srv.URL)
	f.chat.SetSessions([]domain.Session{{ID: "s9", Title: "math chat", UpdatedAt: "t0"}})
	f.chat.SetActive("s9", nil)
	stages := f.watchStages()

	resp, err := f.orchestrator.AskVoice(context.Background(), []byte("audio-bytes"), ".webm")
	require.NoError(t, err)

	assert.Equal(t, "what is 2+2", resp.Question)
	assert.Equal(t, "what is 2+2", f.machine.Question().Get())
	assert.Equal(t, "4", f.machine.Answer().Get())

	// No new session; the existing one keeps its position with a fresh stamp
	sessions := f.chat.Sessions().Get()
	require.Len(t, sessions, 1)
	assert.Equal(t, "s9", sessions[0].ID)
	assert.NotEqual(t, "t0", sessions[0].UpdatedAt)

	msgs := f.chat.Messages().Get()
	require.Len(t, msgs, 2)
	assert.Equal(t, "what is 2+2", msgs[0].Content)
	assert.Equal(t, "4", msgs[1].Content)

	assert.Equal(t,
		[]StageID{StageIdle, StageTranscribing, StageRouting, StageProcessing, StageGenerating, StageComplete},
		*stages)
}

func TestAskText_ClearsPreviousError(t *testing.T) {
	srv := httptest.NewServer(askHandler(t, domain.AskResponse{Answer: "ok"}, nil))
	defer srv.Close()

	f := newFixture(srv.URL)
	f.machine.Fail("old failure")

	_, err := f.orchestrator.AskText(context.Background(), "retry")
	require.NoError(t, err)

	assert.Equal(t, "", f.machine.Error().Get())
	assert.Equal(t, StageComplete, f.machine.Stage().Get().ID)
}
