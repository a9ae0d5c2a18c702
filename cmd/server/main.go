package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rama-lab79/Chatbot-AI/internal/models"
	"github.com/Rama-lab79/Chatbot-AI/pkg/config"
	"github.com/Rama-lab79/Chatbot-AI/pkg/di"
	"github.com/Rama-lab79/Chatbot-AI/pkg/logger"
	"github.com/Rama-lab79/Chatbot-AI/pkg/observability"
	"github.com/Rama-lab79/Chatbot-AI/pkg/router"
	"github.com/Rama-lab79/Chatbot-AI/pkg/secrets"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()

	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	appLog := logger.New(logConfig)
	logger.SetGlobal(appLog)

	appLog.Info("Starting application", "version", os.Getenv("APP_VERSION"))

	shutdownTracing := observability.SetupTracing("mental-health-api")
	defer shutdownTracing()

	if _, err := observability.SetupMetrics("mental-health-api"); err != nil {
		appLog.LogError(err, "Failed to initialize metrics")
		os.Exit(1)
	}

	db, err := config.NewDB()
	if err != nil {
		appLog.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.User{}, &models.ChatMessage{}, &models.DailyLog{}); err != nil {
		appLog.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}

	// Composite indexes for the per-user day-range queries.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_user_created ON chat_messages(user_id, created_at)").Error; err != nil {
		appLog.LogError(err, "Failed to create chat message index")
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_daily_logs_user_created ON daily_logs(user_id, created_at)").Error; err != nil {
		appLog.LogError(err, "Failed to create daily log index")
	}

	// Sensitive configuration resolves through Vault when configured, with
	// environment fallback.
	secretsManager, err := secrets.NewVaultManager(appLog)
	if err != nil {
		appLog.LogError(err, "Failed to initialize secrets manager")
		os.Exit(1)
	}
	ctx := context.Background()
	openRouterKey := secretsManager.GetSecretWithDefault(ctx, "openrouter_api_key", cfg.OpenRouter.APIKey)
	cfg.JWT.Secret = secretsManager.GetSecretWithDefault(ctx, "jwt_secret", cfg.JWT.Secret)

	container, err := di.New(db, cfg, appLog, openRouterKey)
	if err != nil {
		appLog.LogError(err, "Failed to initialize dependency container")
		os.Exit(1)
	}

	r := router.New(container)
	r.SetupRoutes()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	go func() {
		appLog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.LogError(err, "Server failed to start")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.LogError(err, "Server forced to shutdown")
	}

	appLog.Info("Server exited gracefully")
}
