package models

import (
	"context"

	"github.com/evalgen/evalgen/config"

	"github.com/tmc/langchaingo/llms"
)

type LLM interface {
	// Call runs the LLM chat completion against the prompt
	// this version of Call uses the chat endpoint of an LLM, but
	// we pass in a simple string prompt
	Call(
		ctx context.Context,
		prompt string,
		options ...llms.CallOption,
	) (string, error)
	// GetTokenCount returns the number of tokens in the given text
	GetTokenCount(text string) (int, error)
	// Init initializes the LLM
	Init(ctx context.Context, cfg *config.Config) error
}

type EmbeddingsClient interface {
	// EmbedTexts embeds the given texts
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	// Model returns the identity of the embedding model in use
	Model() EmbeddingModel
	// Init initializes the embeddings client
	Init(ctx context.Context, cfg *config.Config) error
}

// Retriever returns the k reference documents most similar to the query
// text, ordered by decreasing similarity.
type Retriever interface {
	Query(ctx context.Context, text string, k int) ([]SearchResult, error)
}

// ConfigGenerator runs the full retrieve-assemble-generate-validate pipeline
// for one requirement.
type ConfigGenerator interface {
	GenerateConfig(ctx context.Context, requirements string) (*GenerationResult, error)
}

// SchemaValidator checks a serialized YAML document against the config
// schema. Raw exposes the schema text for prompt assembly.
type SchemaValidator interface {
	ValidateYAML(doc string) (bool, []Diagnostic)
	Raw() string
}
