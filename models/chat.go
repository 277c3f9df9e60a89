package models

import "time"

// Turn roles within a conversation session.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"` // opaque; empty or unknown starts a fresh session
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	Response  string `json:"response"`   // natural-language reply
	SessionID string `json:"session_id"` // echoes or assigns the session identifier
}

// ToolEnvelope is the uniform wrapper every tool call produces. Result is
// either the backend payload or a single-key {"error": <description>} map;
// the dispatch loop never sees any other shape.
type ToolEnvelope struct {
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
	Result map[string]any `json:"result"`
}

// Turn is one entry in a session's conversation history.
type Turn struct {
	Role     string         `json:"role"`
	Content  string         `json:"content,omitempty"`
	ToolName string         `json:"tool_name,omitempty"`
	ToolArgs map[string]any `json:"tool_args,omitempty"`
	Envelope *ToolEnvelope  `json:"envelope,omitempty"` // set on tool turns
}

// Session is an ordered conversation history keyed by an opaque identifier.
// Sessions are created on the first message with an unseen identifier and
// only ever mutated by appending turns.
type Session struct {
	ID        string    `json:"id"`
	Turns     []Turn    `json:"turns"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns an empty session for the given identifier.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, CreatedAt: now, UpdatedAt: now}
}

// Append adds turns to the session history.
func (s *Session) Append(turns ...Turn) {
	s.Turns = append(s.Turns, turns...)
	s.UpdatedAt = time.Now()
}
