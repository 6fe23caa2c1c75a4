package domain

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message represents one entry of a session's chat history. User and
// assistant messages are always appended as a pair, user first.
type Message struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	QueryType string      `json:"query_type,omitempty"`
	AgentUsed string      `json:"agent_used,omitempty"`
	Plan      []string    `json:"plan,omitempty"`
	CreatedAt string      `json:"created_at"`
}

// MessageMeta carries the server metadata attached to an assistant message
// when a query response is folded into the local history.
type MessageMeta struct {
	MessageID string
	QueryType string
	AgentUsed string
	Plan      []string
}
