package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	UUID      uuid.UUID              `json:"uuid"`
	CreatedAt time.Time              `json:"created_at"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// SessionStore maintains ordered conversation history per session and routes
// incoming messages, triggering a generation when the message asks for one.
type SessionStore interface {
	// HandleMessage appends the user message and the resulting assistant
	// response to the session's history. Messages for the same session are
	// serialized; sessions are independent.
	HandleMessage(
		ctx context.Context,
		generator ConfigGenerator,
		sessionID string,
		message string,
	) (*ChatResponse, error)
	// History returns the full ordered message history for a session, or an
	// empty slice if the session is unknown. It never fails.
	History(sessionID string) []Message
}
