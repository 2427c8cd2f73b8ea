// Package agent orchestrates config generation: retrieve similar reference
// configs, assemble a prompt, invoke the generation backend, and validate
// the result against the config schema.
package agent

import (
	"context"
	"strings"
	"text/template"

	"github.com/evalgen/evalgen/config"
	"github.com/evalgen/evalgen/internal"
	"github.com/evalgen/evalgen/pkg/models"
)

var log = internal.GetLogger()

var generateConfigPrompt = template.Must(
	template.New("generate_config").Parse(generateConfigPromptTemplate),
)

var _ models.ConfigGenerator = &ConfigAgent{}

// ConfigAgent generates promptfoo configs from natural-language
// requirements. It is stateless across calls; the retriever and schema it
// holds are read-only and safe for concurrent generations.
type ConfigAgent struct {
	retriever       models.Retriever
	schema          models.SchemaValidator
	llm             models.LLM
	topK            int
	maxPromptTokens int
}

func NewConfigAgent(
	cfg *config.Config,
	retriever models.Retriever,
	schema models.SchemaValidator,
	llm models.LLM,
) *ConfigAgent {
	topK := cfg.Generation.TopK
	if topK < 1 {
		topK = 3
	}
	return &ConfigAgent{
		retriever:       retriever,
		schema:          schema,
		llm:             llm,
		topK:            topK,
		maxPromptTokens: cfg.Generation.MaxPromptTokens,
	}
}

// GenerateConfig runs the full pipeline for one requirement. Retrieval and
// backend failures are terminal and returned as errors; a generation that
// parses badly or violates the schema is a normal result with IsValid false
// and diagnostics explaining why.
func (a *ConfigAgent) GenerateConfig(
	ctx context.Context,
	requirements string,
) (*models.GenerationResult, error) {
	results, err := a.retriever.Query(ctx, requirements, a.topK)
	if err != nil {
		return nil, models.NewRetrievalError("unable to retrieve reference configs", err)
	}

	prompt, err := a.assemblePrompt(results, requirements)
	if err != nil {
		return nil, err
	}

	generated, err := a.llm.Call(ctx, prompt)
	if err != nil {
		return nil, models.NewGenerationError("backend call failed", err)
	}

	configText := stripCodeFence(generated)

	isValid, diagnostics := a.schema.ValidateYAML(configText)

	return &models.GenerationResult{
		Config:      configText,
		IsValid:     isValid,
		Diagnostics: diagnostics,
	}, nil
}

// assemblePrompt joins the retrieved examples in similarity order with the
// schema and requirements. When a token budget is configured, the least
// similar examples are dropped until the prompt fits.
func (a *ConfigAgent) assemblePrompt(
	results []models.SearchResult,
	requirements string,
) (string, error) {
	examples := make([]string, len(results))
	for i, result := range results {
		examples[i] = result.Document.Content
	}

	for {
		var sb strings.Builder
		err := generateConfigPrompt.Execute(&sb, generateConfigPromptData{
			Examples:     strings.Join(examples, "\n"),
			Schema:       a.schema.Raw(),
			Requirements: requirements,
		})
		if err != nil {
			return "", models.NewGenerationError("unable to assemble prompt", err)
		}
		prompt := sb.String()

		if a.maxPromptTokens <= 0 || len(examples) == 0 {
			return prompt, nil
		}

		tokens, err := a.llm.GetTokenCount(prompt)
		if err != nil || tokens <= a.maxPromptTokens {
			return prompt, nil
		}

		examples = examples[:len(examples)-1]
		log.Debugf(
			"prompt is %d tokens, over budget %d; dropping to %d examples",
			tokens,
			a.maxPromptTokens,
			len(examples),
		)
	}
}

// stripCodeFence unwraps a single markdown code fence around the generated
// document. Backends frequently fence YAML output even when asked not to.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return text
	}

	return strings.Join(lines[1:len(lines)-1], "\n")
}
