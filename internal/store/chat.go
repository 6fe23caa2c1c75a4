package store

import (
	"sync"
	"time"

	"github.com/Rrens/assistant-cli/internal/domain"
	"github.com/google/uuid"
)

// ChatStore mirrors the remote chat state: the session list (newest first),
// the active session pointer and the messages of the active session. The
// server is the source of truth; entries here are only written as side
// effects of successful API calls.
type ChatStore struct {
	sessions *Store[[]domain.Session]
	active   *Store[string] // empty = no active session
	messages *Store[[]domain.Message]

	mu        sync.Mutex
	lastStamp time.Time
}

// NewChatStore creates an empty chat store.
func NewChatStore() *ChatStore {
	return &ChatStore{
		sessions: New([]domain.Session{}),
		active:   New(""),
		messages: New([]domain.Message{}),
	}
}

// Sessions exposes the session list for subscription.
func (c *ChatStore) Sessions() *Store[[]domain.Session] { return c.sessions }

// Active exposes the active session pointer for subscription.
func (c *ChatStore) Active() *Store[string] { return c.active }

// Messages exposes the active session's messages for subscription.
func (c *ChatStore) Messages() *Store[[]domain.Message] { return c.messages }

// ActiveID returns the active session id, empty when none.
func (c *ChatStore) ActiveID() string { return c.active.Get() }

// SetSessions replaces the session list.
func (c *ChatStore) SetSessions(list []domain.Session) {
	if list == nil {
		list = []domain.Session{}
	}
	c.sessions.Set(list)
}

// AddSession inserts a session at the front of the list (newest first).
func (c *ChatStore) AddSession(s domain.Session) {
	c.sessions.Update(func(list []domain.Session) []domain.Session {
		out := make([]domain.Session, 0, len(list)+1)
		out = append(out, s)
		return append(out, list...)
	})
}

// RemoveSession removes a session by id. If it was the active session the
// active pointer and the message list are cleared as well.
func (c *ChatStore) RemoveSession(id string) {
	c.sessions.Update(func(list []domain.Session) []domain.Session {
		out := make([]domain.Session, 0, len(list))
		for _, s := range list {
			if s.ID != id {
				out = append(out, s)
			}
		}
		return out
	})

	if c.active.Get() == id {
		c.active.Set("")
		c.messages.Set([]domain.Message{})
	}
}

// UpdateSession merges patch into the matching entry, in place. The entry
// keeps its current position in the list.
// TODO: reorder so the most recently active session surfaces first.
func (c *ChatStore) UpdateSession(id string, patch domain.SessionPatch) {
	c.sessions.Update(func(list []domain.Session) []domain.Session {
		out := make([]domain.Session, len(list))
		copy(out, list)
		for i := range out {
			if out[i].ID != id {
				continue
			}
			if patch.Title != nil {
				out[i].Title = *patch.Title
			}
			if patch.UpdatedAt != nil {
				out[i].UpdatedAt = *patch.UpdatedAt
			}
		}
		return out
	})
}

// SetActive sets the active session and replaces the message list. Callers
// never observe the pointer and the messages out of sync.
func (c *ChatStore) SetActive(id string, messages []domain.Message) {
	if messages == nil {
		messages = []domain.Message{}
	}
	c.active.Set(id)
	c.messages.Set(messages)
}

// ClearActive clears the active session pointer and the message list,
// used when starting a new chat.
func (c *ChatStore) ClearActive() {
	c.active.Set("")
	c.messages.Set([]domain.Message{})
}

// AppendMessage appends a single message to the active session's history.
func (c *ChatStore) AppendMessage(m domain.Message) {
	c.messages.Update(func(list []domain.Message) []domain.Message {
		out := make([]domain.Message, len(list), len(list)+1)
		copy(out, list)
		return append(out, m)
	})
}

// AppendPair appends a user/assistant message pair in a single update, user
// first. The user message gets a temporary client id; the assistant message
// uses the server-provided id when available. Both are stamped with a
// non-decreasing wall-clock timestamp.
func (c *ChatStore) AppendPair(userContent, assistantContent string, meta domain.MessageMeta) {
	stamp := c.nextStamp()

	userMsg := domain.Message{
		ID:        "temp-user-" + uuid.NewString(),
		Role:      domain.RoleUser,
		Content:   userContent,
		CreatedAt: stamp,
	}

	assistantID := meta.MessageID
	if assistantID == "" {
		assistantID = "temp-assistant-" + uuid.NewString()
	}
	assistantMsg := domain.Message{
		ID:        assistantID,
		Role:      domain.RoleAssistant,
		Content:   assistantContent,
		QueryType: meta.QueryType,
		AgentUsed: meta.AgentUsed,
		Plan:      meta.Plan,
		CreatedAt: stamp,
	}

	c.messages.Update(func(list []domain.Message) []domain.Message {
		out := make([]domain.Message, len(list), len(list)+2)
		copy(out, list)
		return append(out, userMsg, assistantMsg)
	})
}

// ClearAll wipes sessions, active pointer and messages, used on logout.
func (c *ChatStore) ClearAll() {
	c.sessions.Set([]domain.Session{})
	c.active.Set("")
	c.messages.Set([]domain.Message{})
}

// nextStamp returns the current time as RFC3339, clamped so consecutive
// stamps never decrease even if the wall clock steps backwards.
func (c *ChatStore) nextStamp() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	if now.Before(c.lastStamp) {
		now = c.lastStamp
	}
	c.lastStamp = now
	return now.Format(time.RFC3339Nano)
}
