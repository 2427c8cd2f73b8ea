package llms

import (
	"context"

	"github.com/evalgen/evalgen/config"
	"github.com/evalgen/evalgen/pkg/models"

	"github.com/tmc/langchaingo/llms/openai"
)

var _ models.EmbeddingsClient = &OpenAIEmbeddingsClient{}

func NewOpenAIEmbeddingsClient(ctx context.Context, cfg *config.Config) (*OpenAIEmbeddingsClient, error) {
	client := &OpenAIEmbeddingsClient{}
	err := client.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type OpenAIEmbeddingsClient struct {
	client *openai.Chat
	model  models.EmbeddingModel
}

func (c *OpenAIEmbeddingsClient) Init(_ context.Context, cfg *config.Config) error {
	options, err := c.configureClient(cfg)
	if err != nil {
		return err
	}

	// Create a new client instance with options.
	// Even if it will just be used for embeddings,
	// it uses the same langchain openai chat client builder
	client, err := openai.NewChat(options...)
	if err != nil {
		return err
	}

	c.client = client
	c.model = models.EmbeddingModel{
		Name:       cfg.Embeddings.Model,
		Dimensions: cfg.Embeddings.Dimensions,
	}

	return nil
}

func (c *OpenAIEmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return EmbedTextsWithOpenAIClient(ctx, texts, c.client)
}

func (c *OpenAIEmbeddingsClient) Model() models.EmbeddingModel {
	return c.model
}

func getValidOpenAIModel() string {
	for k := range ValidOpenAILLMs {
		return k
	}
	return "gpt-3.5-turbo"
}

func (c *OpenAIEmbeddingsClient) configureClient(cfg *config.Config) ([]openai.Option, error) {
	apiKey := GetOpenAIAPIKey(cfg)

	// Even if it will only be used for embeddings, we should pass a valid
	// openai llm model to avoid any errors
	validOpenaiLLMModel := getValidOpenAIModel()

	options := GetBaseOpenAIClientOptions(apiKey, validOpenaiLLMModel, cfg)

	if cfg.Embeddings.Model != "" {
		options = append(options, openai.WithEmbeddingModel(cfg.Embeddings.Model))
	}

	return options, nil
}
