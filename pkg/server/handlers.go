package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/evalgen/evalgen/internal"
	"github.com/evalgen/evalgen/pkg/models"
)

var log = internal.GetLogger()

var validate = validator.New()

// ChatRequest is a single incoming chat message.
type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Message   string `json:"message"    validate:"required"`
}

// PostChatHandler returns a handler for POST requests to /chat.
// The session manager decides whether the message triggers a config
// generation or a static help response.
func PostChatHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request ChatRequest
		if err := decodeJSON(r, &request); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}
		if err := validate.Struct(request); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}

		response, err := appState.SessionStore.HandleMessage(
			r.Context(),
			appState.Generator,
			request.SessionID,
			request.Message,
		)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		if err := encodeJSON(w, response); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetChatHistoryHandler returns a handler for GET requests to
// /chat/{sessionId}/history. Unknown sessions yield an empty list, not an
// error.
func GetChatHistoryHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionId")

		history := appState.SessionStore.History(sessionID)

		if err := encodeJSON(w, history); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
