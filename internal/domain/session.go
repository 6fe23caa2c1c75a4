package domain

// Session represents a conversation thread owned by the backend.
// Timestamps stay in the server's ISO-8601 wire format; the client never
// does arithmetic on them, it only displays and forwards them.
type Session struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SessionPatch carries partial updates merged into a cached session entry.
// Nil fields are left untouched.
type SessionPatch struct {
	Title     *string
	UpdatedAt *string
}

// SessionWithMessages is the GET /api/sessions/{id} response shape.
type SessionWithMessages struct {
	Session
	Messages []Message `json:"messages"`
}

// SessionCreate is the POST /api/sessions request body.
type SessionCreate struct {
	Title string `json:"title"`
}
