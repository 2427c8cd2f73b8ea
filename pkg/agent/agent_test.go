package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/evalgen/evalgen/config"
	"github.com/evalgen/evalgen/pkg/index"
	"github.com/evalgen/evalgen/pkg/models"
	"github.com/evalgen/evalgen/pkg/schemavalidate"
	"github.com/evalgen/evalgen/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["prompts", "tests"],
	"properties": {
		"description": {"type": "string"},
		"prompts": {"type": "array", "items": {"type": "string"}},
		"tests": {"type": "array"}
	}
}`

const validGeneration = `description: customer service chatbot test suite
prompts:
  - "You are a helpful customer service assistant. Customer: {{query}}"
tests:
  - description: polite greeting
    vars:
      query: Hello, how are you today?
`

var testDocs = []models.Document{
	{Content: "chatbot polite customer service", Source: "chatbot.yaml"},
	{Content: "bedrock code generation", Source: "bedrock.yaml"},
	{Content: "chatbot product questions", Source: "support.yaml"},
}

func newTestAgent(t *testing.T, llm models.LLM) *ConfigAgent {
	t.Helper()

	schemaPath := filepath.Join(t.TempDir(), "config-schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(testSchema), 0o644))
	schema, err := schemavalidate.Load(schemaPath)
	require.NoError(t, err)

	embedder := &testutils.FakeEmbedder{
		Vocabulary: []string{"chatbot", "polite", "bedrock", "product"},
		ModelName:  "fake-embedding-model",
	}
	idx, err := index.Build(context.Background(), testDocs, embedder)
	require.NoError(t, err)

	cfg := &config.Config{
		Generation: config.GenerationConfig{TopK: 3},
	}

	return NewConfigAgent(cfg, idx, schema, llm)
}

func TestGenerateConfigValid(t *testing.T) {
	llm := &testutils.FakeLLM{Response: validGeneration}
	a := newTestAgent(t, llm)

	result, err := a.GenerateConfig(context.Background(), "customer service chatbot, polite, GPT-4")
	require.NoError(t, err)

	assert.Equal(t, validGeneration, result.Config)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Diagnostics)

	// the prompt carried the most similar example and the schema
	assert.Contains(t, llm.LastPrompt, "chatbot polite customer service")
	assert.Contains(t, llm.LastPrompt, `"required": ["prompts", "tests"]`)
	assert.Contains(t, llm.LastPrompt, "customer service chatbot, polite, GPT-4")
}

func TestGenerateConfigFencedOutput(t *testing.T) {
	llm := &testutils.FakeLLM{Response: "```yaml\n" + validGeneration + "```"}
	a := newTestAgent(t, llm)

	result, err := a.GenerateConfig(context.Background(), "polite chatbot")
	require.NoError(t, err)

	assert.True(t, result.IsValid)
	assert.NotContains(t, result.Config, "```")
}

func TestGenerateConfigMalformedOutput(t *testing.T) {
	llm := &testutils.FakeLLM{Response: "prompts: [unclosed"}
	a := newTestAgent(t, llm)

	result, err := a.GenerateConfig(context.Background(), "polite chatbot")
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.Diagnostics)
	assert.Equal(t, "yaml", result.Diagnostics[0].Field)
}

func TestGenerateConfigSchemaViolation(t *testing.T) {
	llm := &testutils.FakeLLM{Response: "description: missing everything required\n"}
	a := newTestAgent(t, llm)

	result, err := a.GenerateConfig(context.Background(), "polite chatbot")
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Diagnostics)
}

func TestGenerateConfigBackendFailure(t *testing.T) {
	llm := &testutils.FakeLLM{FailWith: errors.New("quota exceeded")}
	a := newTestAgent(t, llm)

	_, err := a.GenerateConfig(context.Background(), "polite chatbot")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGeneration))
}

type failingRetriever struct{}

func (f *failingRetriever) Query(context.Context, string, int) ([]models.SearchResult, error) {
	return nil, errors.New("index unavailable")
}

func TestGenerateConfigRetrievalFailure(t *testing.T) {
	llm := &testutils.FakeLLM{Response: validGeneration}
	a := newTestAgent(t, llm)
	a.retriever = &failingRetriever{}

	_, err := a.GenerateConfig(context.Background(), "polite chatbot")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrRetrieval))
	assert.Zero(t, llm.CallCount, "no generation should be attempted after retrieval failure")
}

func TestAssemblePromptTokenBudget(t *testing.T) {
	llm := &testutils.FakeLLM{Response: validGeneration}
	a := newTestAgent(t, llm)
	// FakeLLM counts whitespace-separated words; force dropping examples
	a.maxPromptTokens = 1

	results := []models.SearchResult{
		{Document: testDocs[0], Score: 1.0},
		{Document: testDocs[1], Score: 0.5},
	}

	prompt, err := a.assemblePrompt(results, "polite chatbot")
	require.NoError(t, err)
	assert.NotContains(t, prompt, "bedrock code generation")
	assert.NotContains(t, prompt, "chatbot polite customer service")
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "a: 1", stripCodeFence("```yaml\na: 1\n```"))
	assert.Equal(t, "a: 1", stripCodeFence("```\na: 1\n```"))
	assert.Equal(t, "a: 1\n", stripCodeFence("a: 1\n"))
	assert.Equal(t, "```not fenced", stripCodeFence("```not fenced"))
}
