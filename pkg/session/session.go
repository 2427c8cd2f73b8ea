// Package session maintains per-session conversation history and routes
// incoming chat messages, triggering config generation on request.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/evalgen/evalgen/internal"
	"github.com/evalgen/evalgen/pkg/models"

	"github.com/google/uuid"
)

var log = internal.GetLogger()

// GenerateTrigger is the phrase that routes a message to the config
// generation pipeline.
const GenerateTrigger = "generate config"

const helpResponse = `I can help you generate promptfoo configuration files.
To generate a config, start your message with "generate config" and describe
your requirements. For example:

"generate config for a customer service chatbot that uses GPT-4 and tests
for polite responses"`

var _ models.SessionStore = &Store{}

// ChatSession is one conversation's ordered history. The mutex serializes
// message handling within the session; sessions are independently lockable
// so concurrent sessions never contend.
type ChatSession struct {
	mu       sync.Mutex
	messages []models.Message
}

// Store holds all chat sessions in memory. Sessions are created on first
// message and never evicted; expiry policy belongs to the caller.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*ChatSession
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*ChatSession),
	}
}

// get returns the session for sessionID, creating it on first use.
func (s *Store) get(sessionID string) *ChatSession {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return session
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok = s.sessions[sessionID]; ok {
		return session
	}
	session = &ChatSession{}
	s.sessions[sessionID] = session
	return session
}

// HandleMessage appends the user message and an assistant response to the
// session's history. A message containing the generation trigger runs the
// generator with the full message as requirements; anything else receives
// a static help response. Messages for the same session are serialized.
func (s *Store) HandleMessage(
	ctx context.Context,
	generator models.ConfigGenerator,
	sessionID string,
	message string,
) (*models.ChatResponse, error) {
	session := s.get(sessionID)

	session.mu.Lock()
	defer session.mu.Unlock()

	if !strings.Contains(strings.ToLower(message), GenerateTrigger) {
		session.append(models.RoleUser, message)
		session.append(models.RoleAssistant, helpResponse)
		return &models.ChatResponse{Response: helpResponse}, nil
	}

	result, err := generator.GenerateConfig(ctx, message)
	if err != nil {
		log.Errorf("config generation failed for session %s: %v", sessionID, err)
		return nil, err
	}

	response := fmt.Sprintf(
		"I've generated a configuration based on your requirements. Here it is:\n\n```yaml\n%s\n```",
		result.Config,
	)

	session.append(models.RoleUser, message)
	session.append(models.RoleAssistant, response)

	return &models.ChatResponse{
		Response:    response,
		Config:      result.Config,
		IsValid:     &result.IsValid,
		Diagnostics: result.Diagnostics,
	}, nil
}

// History returns a copy of the full ordered message history for sessionID,
// or an empty slice if the session is unknown. It never fails.
func (s *Store) History(sessionID string) []models.Message {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return []models.Message{}
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	history := make([]models.Message, len(session.messages))
	copy(history, session.messages)
	return history
}

// append must be called with the session mutex held.
func (cs *ChatSession) append(role, content string) {
	cs.messages = append(cs.messages, models.Message{
		UUID:      uuid.New(),
		CreatedAt: time.Now().UTC(),
		Role:      role,
		Content:   content,
	})
}
