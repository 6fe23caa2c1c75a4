package domain

// AskRequest is the POST /api/ask/text/detailed request body. SessionID is
// omitted entirely when no session is active so the backend starts a new one.
type AskRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

// AskResponse is the detailed answer shape shared by the text and voice
// endpoints. Question carries the transcript on the voice path.
type AskResponse struct {
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	QueryType    string   `json:"query_type,omitempty"`
	AgentUsed    string   `json:"agent_used,omitempty"`
	Plan         []string `json:"plan,omitempty"`
	SessionID    string   `json:"session_id,omitempty"`
	SessionTitle string   `json:"session_title,omitempty"`
	MessageID    string   `json:"message_id,omitempty"`
}

// AgentInfo describes one backend agent from GET /api/agents
type AgentInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
