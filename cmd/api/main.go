package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/govmind/decisions-api/pkg/app/analysis"
	"github.com/govmind/decisions-api/pkg/app/dataset"
	"github.com/govmind/decisions-api/pkg/app/search"
	"github.com/govmind/decisions-api/pkg/config"
	handlers "github.com/govmind/decisions-api/pkg/handlers/http"
	"github.com/govmind/decisions-api/pkg/infra/database"
	openaiembedding "github.com/govmind/decisions-api/pkg/infra/embedding/openai"
	"github.com/govmind/decisions-api/pkg/infra/logger"
	prom "github.com/govmind/decisions-api/pkg/infra/prometheus"
	"github.com/govmind/decisions-api/pkg/infra/repository"
	"github.com/govmind/decisions-api/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := logger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	apiKey := cfg.OpenAI.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	if cfg.Metrics.Enabled {
		prom.Initialize()
	}

	// repository
	decisionRepository := repository.NewDecisionRepository(db.DB)

	// dataset snapshot
	loader := dataset.NewLoader(decisionRepository, cfg.Dataset.PageSize, logger)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 5*time.Minute)
	snapshot, err := loader.Reload(loadCtx)
	cancelLoad()
	if err != nil {
		// Start degraded; /api/v1/reload can recover once the database is back.
		logger.WithError(err).Error("initial dataset load failed")
	} else if cfg.Metrics.Enabled {
		prom.DatasetRecords.Set(float64(len(snapshot.Decisions)))
	}

	// services
	embedder, err := openaiembedding.NewEmbedder(openaiembedding.Config{
		APIKey:         apiKey,
		Model:          cfg.OpenAI.EmbeddingModel,
		MaxBatchSize:   cfg.OpenAI.MaxBatchSize,
		RequestTimeout: cfg.OpenAI.RequestTimeout,
	}, logger)
	if err != nil {
		logger.Fatalf("failed to initialize embedder: %v", err)
	}
	searchService := search.NewService(embedder)

	engine, err := analysis.NewEngine(analysis.Config{
		APIKey: apiKey,
		Model:  cfg.OpenAI.ChatModel,
	}, loader, logger)
	if err != nil {
		logger.Fatalf("failed to initialize analysis engine: %v", err)
	}

	apiServer := server.NewApiServer(server.ApiServerDI{
		Config: cfg,
		Logger: logger,
		HandlerTransport: handlers.HandlerTransport{
			AskHandler:    handlers.NewAskHandler(logger, engine),
			SearchHandler: handlers.NewSearchHandler(logger, searchService, loader, cfg.Search),
			StatsHandler:  handlers.NewStatsHandler(logger, loader),
			ReloadHandler: handlers.NewReloadHandler(logger, loader),
			CountHandler:  handlers.NewCountHandler(logger, decisionRepository, loader),
			HealthHandler: handlers.NewHealthHandler(logger, decisionRepository, engine),
		},
	})

	go func() {
		if err := apiServer.Run(); err != nil {
			logger.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := apiServer.Shutdown(); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
