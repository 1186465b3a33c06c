package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/api"
	"github.com/okanevale/temperament/internal/config"
	"github.com/okanevale/temperament/internal/llm"
	"github.com/okanevale/temperament/internal/personality"
	"github.com/okanevale/temperament/internal/service"
	"github.com/okanevale/temperament/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	fileStore, err := store.NewFileStore(config.DataDir(), logger)
	if err != nil {
		logger.Fatal("failed to initialize file store", zap.Error(err))
	}

	p := personality.Load(config.PersonalityPath(), logger)

	engine := service.NewPersonalityEngine(ctx, p, fileStore, fileStore, logger)

	llmClient, err := llm.NewClient(config.LLMProvider(), config.LLMAPIKey())
	if err != nil {
		logger.Fatal("LLM client initialization failed", zap.Error(err))
	}
	logger.Info("LLM client initialized", zap.String("provider", config.LLMProvider()))

	decision := service.NewDecisionService(engine, llmClient, logger)

	app := api.NewApp(engine, decision, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	// Persist learning state before exit
	engine.SaveState(ctx)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
