package models

import (
	"github.com/evalgen/evalgen/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	LLMClient        LLM
	EmbeddingsClient EmbeddingsClient
	Retriever        Retriever
	Schema           SchemaValidator
	Generator        ConfigGenerator
	SessionStore     SessionStore
	Config           *config.Config
}
