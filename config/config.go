package config

import (
	"strings"

	"dario.cat/mergo"

	"github.com/evalgen/evalgen/internal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

var defaultConfig = Config{
	LLM: LLM{
		Service: "openai",
		Model:   "gpt-4",
	},
	Embeddings: EmbeddingsConfig{
		Service:    "openai",
		Model:      "text-embedding-ada-002",
		Dimensions: 1536,
	},
	Corpus: CorpusConfig{
		Path:    "./examples",
		Pattern: "promptfooconfig*.y*ml",
	},
	Index: IndexConfig{
		StorePath: "./data/index/vectors.json",
	},
	Schema: SchemaConfig{
		Path: "./schemas/config-schema.json",
	},
	Generation: GenerationConfig{
		TopK:            3,
		MaxPromptTokens: 6144,
	},
	Server: ServerConfig{
		Port: 8000,
	},
	Log: LogConfig{
		Level: "info",
	},
}

// LoadConfig loads the config file and ENV variables into a Config struct
func LoadConfig(configFile string) (*Config, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("EVALGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	err := viper.BindEnv("llm.openai_api_key", "EVALGEN_OPENAI_API_KEY")
	if err != nil {
		log.Fatalf("Error binding environment variable: %s", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Fill anything the config file and ENV left unset
	if err := mergo.Merge(&cfg, defaultConfig); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Warn(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}
