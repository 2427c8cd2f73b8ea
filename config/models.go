package config

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	LLM        LLM              `mapstructure:"llm"`
	Embeddings EmbeddingsConfig `mapstructure:"embeddings"`
	Corpus     CorpusConfig     `mapstructure:"corpus"`
	Index      IndexConfig      `mapstructure:"index"`
	Schema     SchemaConfig     `mapstructure:"schema"`
	Generation GenerationConfig `mapstructure:"generation"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Auth       AuthConfig       `mapstructure:"auth"`
}

type LLM struct {
	Service string `mapstructure:"service"`
	Model   string `mapstructure:"model"`
	// OpenAIAPIKey is loaded from ENV not config file.
	OpenAIAPIKey   string `mapstructure:"openai_api_key"`
	OpenAIEndpoint string `mapstructure:"openai_endpoint"`
	OpenAIOrgID    string `mapstructure:"openai_org_id"`
}

type EmbeddingsConfig struct {
	Service    string `mapstructure:"service"`
	Model      string `mapstructure:"model"`
	Dimensions int    `mapstructure:"dimensions"`
}

// CorpusConfig locates the reference config corpus on disk. Pattern is a
// filename glob; only matching files are loaded as reference documents.
type CorpusConfig struct {
	Path    string `mapstructure:"path"`
	Pattern string `mapstructure:"pattern"`
}

// IndexConfig controls vector index persistence. An empty StorePath disables
// persistence and the index is rebuilt on every startup.
type IndexConfig struct {
	StorePath string `mapstructure:"store_path"`
}

type SchemaConfig struct {
	Path string `mapstructure:"path"`
}

type GenerationConfig struct {
	// TopK is the number of reference documents retrieved per generation.
	TopK int `mapstructure:"top_k"`
	// MaxPromptTokens bounds the assembled prompt. Retrieved examples are
	// dropped, least similar first, until the prompt fits.
	MaxPromptTokens int `mapstructure:"max_prompt_tokens"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret"`
	Required bool   `mapstructure:"required"`
}
