package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evalgen/evalgen/config"
	"github.com/evalgen/evalgen/pkg/models"
	"github.com/evalgen/evalgen/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	result *models.GenerationResult
	err    error
}

func (g *stubGenerator) GenerateConfig(context.Context, string) (*models.GenerationResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func newTestAppState(generator models.ConfigGenerator) *models.AppState {
	return &models.AppState{
		Generator:    generator,
		SessionStore: session.NewStore(),
		Config:       &config.Config{},
	}
}

func postChat(t *testing.T, router http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestPostChatHandlerGenerate(t *testing.T) {
	generator := &stubGenerator{
		result: &models.GenerationResult{
			Config:  "prompts:\n  - hi\ntests: []\n",
			IsValid: true,
		},
	}
	appState := newTestAppState(generator)
	router := setupRouter(appState)

	res := postChat(t, router, ChatRequest{
		SessionID: "session-1",
		Message:   "generate config for a polite chatbot",
	})
	require.Equal(t, http.StatusOK, res.Code)

	var response models.ChatResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
	assert.Equal(t, generator.result.Config, response.Config)
	require.NotNil(t, response.IsValid)
	assert.True(t, *response.IsValid)
	assert.Contains(t, response.Response, "```yaml")
}

func TestPostChatHandlerHelp(t *testing.T) {
	appState := newTestAppState(&stubGenerator{})
	router := setupRouter(appState)

	res := postChat(t, router, ChatRequest{
		SessionID: "session-1",
		Message:   "what can you do?",
	})
	require.Equal(t, http.StatusOK, res.Code)

	var response models.ChatResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
	assert.Empty(t, response.Config)
	assert.Nil(t, response.IsValid)
	assert.Contains(t, response.Response, "generate config")
}

func TestPostChatHandlerValidation(t *testing.T) {
	appState := newTestAppState(&stubGenerator{})
	router := setupRouter(appState)

	t.Run("missing session id", func(t *testing.T) {
		res := postChat(t, router, ChatRequest{Message: "hello"})
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("missing message", func(t *testing.T) {
		res := postChat(t, router, ChatRequest{SessionID: "session-1"})
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(
			http.MethodPost,
			"/api/v1/chat",
			bytes.NewReader([]byte("{not json")),
		)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestPostChatHandlerGenerationFailure(t *testing.T) {
	appState := newTestAppState(&stubGenerator{err: errors.New("backend down")})
	router := setupRouter(appState)

	res := postChat(t, router, ChatRequest{
		SessionID: "session-1",
		Message:   "generate config for a chatbot",
	})
	assert.Equal(t, http.StatusInternalServerError, res.Code)
}

func TestGetChatHistoryHandler(t *testing.T) {
	generator := &stubGenerator{
		result: &models.GenerationResult{Config: "tests: []\n", IsValid: true},
	}
	appState := newTestAppState(generator)
	router := setupRouter(appState)

	res := postChat(t, router, ChatRequest{
		SessionID: "session-1",
		Message:   "generate config for a chatbot",
	})
	require.Equal(t, http.StatusOK, res.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/session-1/history", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	var history []models.Message
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, models.RoleAssistant, history[1].Role)
}

func TestGetChatHistoryHandlerUnknownSession(t *testing.T) {
	appState := newTestAppState(&stubGenerator{})
	router := setupRouter(appState)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/never-seen/history", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, "[]", res.Body.String())
}
