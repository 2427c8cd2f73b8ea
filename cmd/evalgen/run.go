package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/evalgen/evalgen/config"
	"github.com/evalgen/evalgen/pkg/agent"
	"github.com/evalgen/evalgen/pkg/auth"
	"github.com/evalgen/evalgen/pkg/corpus"
	"github.com/evalgen/evalgen/pkg/index"
	"github.com/evalgen/evalgen/pkg/llms"
	"github.com/evalgen/evalgen/pkg/models"
	"github.com/evalgen/evalgen/pkg/schemavalidate"
	"github.com/evalgen/evalgen/pkg/server"
	"github.com/evalgen/evalgen/pkg/session"
)

// schemaProbePaths are well-known fallback locations for the promptfoo
// config schema, tried after the configured path.
var schemaProbePaths = []string{
	"./schemas/config-schema.json",
	"./site/static/config-schema.json",
}

// run is the entrypoint for the evalgen server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring evalgen: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting evalgen server version %s", config.VersionString)

	config.SetLogLevel(cfg)
	appState := NewAppState(cfg)

	setupSignalHandler()

	srv := server.Create(appState)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil {
		log.Fatal(err)
	}
}

// NewAppState creates an AppState from the config file / ENV: it initializes
// the LLM and embeddings clients, loads the config schema and the reference
// corpus, restores or builds the vector index, and wires up the generation
// agent and session store. Any failure here is fatal; the server must not
// start serving with a partial pipeline.
func NewAppState(cfg *config.Config) *models.AppState {
	ctx := context.Background()

	llmClient, err := llms.NewLLMClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Error initializing LLM client: %s", err)
	}

	embeddingsClient, err := llms.NewEmbeddingsClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Error initializing embeddings client: %s", err)
	}

	schema, err := schemavalidate.Load(
		append([]string{cfg.Schema.Path}, schemaProbePaths...)...,
	)
	if err != nil {
		log.Fatalf("Error loading config schema: %s", err)
	}

	documents, err := corpus.LoadDocuments(cfg.Corpus.Path, cfg.Corpus.Pattern)
	if err != nil {
		log.Fatalf("Error loading corpus: %s", err)
	}

	idx, err := index.NewIndex(ctx, cfg, documents, embeddingsClient)
	if err != nil {
		log.Fatalf("Error building vector index: %s", err)
	}

	return &models.AppState{
		LLMClient:        llmClient,
		EmbeddingsClient: embeddingsClient,
		Retriever:        idx,
		Schema:           schema,
		Generator:        agent.NewConfigAgent(cfg, idx, schema, llmClient),
		SessionStore:     session.NewStore(),
		Config:           cfg,
	}
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		dumped, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Println(string(dumped))
		os.Exit(0)
	}
	if generateKey {
		fmt.Println(auth.GenerateJWT(cfg))
		os.Exit(0)
	}
}

// setupSignalHandler exits cleanly on termination
func setupSignalHandler() {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("Shutting down")
		os.Exit(0)
	}()
}
