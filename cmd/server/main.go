package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"papergenius/internal/api"
	"papergenius/internal/api/handlers"
	"papergenius/internal/config"
	"papergenius/internal/gemini"
	"papergenius/internal/paper"
	"papergenius/internal/question"
	"papergenius/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			logger.Error("error loading .env file", "error", err)
			os.Exit(1)
		}
		logger.Info(".env file not found, relying on system environment variables")
	}

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	contentStore, err := store.NewMongoStore(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		logger.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer contentStore.Close(context.Background())

	// The Gemini credential is optional; without it every generation
	// request is served by the fallback synthesizer.
	var textModel question.TextModel
	if cfg.GeminiConfigured() {
		geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Error("failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		defer geminiClient.Close()
		textModel = geminiClient
	} else {
		logger.Warn("GEMINI_API_KEY not set, question generation will use the fallback synthesizer")
	}

	generator := question.NewGenerator(textModel, question.NewLimiter(), logger)
	paperService := paper.NewService(contentStore, generator, logger)
	handler := handlers.NewHandler(contentStore, paperService, textModel, logger)

	router := gin.Default()
	api.SetupRoutes(router, handler, cfg.FrontendURL)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited properly")
}
