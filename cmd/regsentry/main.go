// RegSentry orchestrator server - analyzes regulatory text against a
// target repository and serves the /analyze, /health, and /audit HTTP
// endpoints.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/regsentry/regsentry/pkg/agent"
	"github.com/regsentry/regsentry/pkg/api"
	"github.com/regsentry/regsentry/pkg/audit"
	"github.com/regsentry/regsentry/pkg/cleanup"
	"github.com/regsentry/regsentry/pkg/config"
	"github.com/regsentry/regsentry/pkg/database"
	"github.com/regsentry/regsentry/pkg/embedding"
	"github.com/regsentry/regsentry/pkg/executor"
	"github.com/regsentry/regsentry/pkg/indexer"
	"github.com/regsentry/regsentry/pkg/llmgateway"
	"github.com/regsentry/regsentry/pkg/orchestrator"
	"github.com/regsentry/regsentry/pkg/vectorindex"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	envFile := flag.String("env-file", getEnv("ENV_FILE", ".env"), "Path to a .env file")
	reindex := flag.Bool("reindex", false, "Index REPO_PATH into the vector index and exit")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("Warning: could not load %s: %v", *envFile, err)
		log.Printf("Continuing with existing environment variables...")
	} else {
		log.Printf("Loaded environment from %s", *envFile)
	}

	httpPort := getEnv("HTTP_PORT", "8080")
	gin.SetMode(getEnv("GIN_MODE", "release"))

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutdown signal received")
		cancel()
	}()

	dbClient, err := database.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close()
	slog.Info("connected to PostgreSQL database")

	index := vectorindex.New(dbClient.Client)
	auditStore := audit.New(dbClient.Client)

	encoder, err := embedding.NewEncoder(cfg.EmbeddingModel)
	if err != nil {
		log.Fatalf("Failed to construct embedding encoder: %v", err)
	}

	if *reindex {
		runIndex(ctx, encoder, index, cfg.RepoPath)
		return
	}

	baseLLM, err := llmgateway.New(llmgateway.Config{
		LLMType:       cfg.LLMType,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		MinTokens:     cfg.LLMMinTokens,
	})
	if err != nil {
		log.Fatalf("Failed to construct LLM gateway: %v", err)
	}

	buildGraph := func(override llmgateway.Client) *executor.Graph {
		llm := override
		if llm == nil {
			llm = baseLLM
		}
		return executor.NewStandard(llm, encoder, index, executor.StandardOptions{
			KeywordBoost: cfg.CodeReaderKeywordBoost,
			TopK:         agent.DefaultTopK,
			Threshold:    agent.DefaultThreshold,
		})
	}

	orch := orchestrator.New(buildGraph, auditStore, cfg.RepoPath, cfg.RunBudget)

	cleanupSvc := cleanup.NewService(cleanup.RetentionConfig{
		AuditRetentionDays: cfg.AuditRetentionDays,
		CleanupInterval:    cfg.CleanupInterval,
	}, auditStore)
	cleanupSvc.Start(ctx)
	defer cleanupSvc.Stop()

	server := api.NewServer(orch, baseLLM, dbClient, index)

	router := gin.Default()
	server.Register(router)

	srv := &http.Server{Addr: ":" + httpPort, Handler: router}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	slog.Info("HTTP server listening", "port", httpPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server failed: %v", err)
	}
}

// runIndex drives the repository indexer (C4) as a one-shot operation,
// used to (re)populate the vector index ahead of serving traffic.
func runIndex(ctx context.Context, encoder *embedding.Encoder, index *vectorindex.Index, repoPath string) {
	idx := &indexer.Indexer{Encoder: encoder, Store: index}
	result, err := idx.Index(ctx, repoPath)
	if err != nil {
		log.Fatalf("Indexing failed: %v", err)
	}
	slog.Info("indexing complete", "repo_path", repoPath, "indexed", result.Indexed, "skipped", result.Skipped)
}
