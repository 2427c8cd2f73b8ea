package testutils

import (
	"context"
	"strings"

	"github.com/evalgen/evalgen/config"
	"github.com/evalgen/evalgen/pkg/models"

	"github.com/tmc/langchaingo/llms"
)

var _ models.EmbeddingsClient = &FakeEmbedder{}

// FakeEmbedder embeds text deterministically: each vocabulary word is one
// vector dimension and its value is the word's occurrence count in the
// lowercased text. Texts sharing vocabulary words score higher under cosine
// similarity; texts containing none embed to the zero vector.
type FakeEmbedder struct {
	Vocabulary []string
	ModelName  string
	FailWith   error
}

func (e *FakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if e.FailWith != nil {
		return nil, e.FailWith
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, len(e.Vocabulary))
		lower := strings.ToLower(text)
		for j, word := range e.Vocabulary {
			v[j] = float32(strings.Count(lower, word))
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (e *FakeEmbedder) Model() models.EmbeddingModel {
	return models.EmbeddingModel{
		Name:       e.ModelName,
		Dimensions: len(e.Vocabulary),
	}
}

func (e *FakeEmbedder) Init(_ context.Context, _ *config.Config) error {
	return nil
}

var _ models.LLM = &FakeLLM{}

// FakeLLM returns a canned response and records the last prompt it was
// called with.
type FakeLLM struct {
	Response   string
	FailWith   error
	LastPrompt string
	CallCount  int
}

func (l *FakeLLM) Call(_ context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	l.CallCount++
	l.LastPrompt = prompt
	if l.FailWith != nil {
		return "", l.FailWith
	}
	return l.Response, nil
}

func (l *FakeLLM) GetTokenCount(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

func (l *FakeLLM) Init(_ context.Context, _ *config.Config) error {
	return nil
}
