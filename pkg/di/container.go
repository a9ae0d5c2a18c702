package di

import (
	"fmt"

	"github.com/Rama-lab79/Chatbot-AI/ai"
	"github.com/Rama-lab79/Chatbot-AI/internal/repository"
	"github.com/Rama-lab79/Chatbot-AI/internal/service"
	"github.com/Rama-lab79/Chatbot-AI/pkg/cache"
	"github.com/Rama-lab79/Chatbot-AI/pkg/config"
	"github.com/Rama-lab79/Chatbot-AI/pkg/jwt"
	"github.com/Rama-lab79/Chatbot-AI/pkg/logger"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	DB             *gorm.DB
	Config         *config.Config
	Logger         *logger.Logger
	JWTService     *jwt.Service
	Completions    ai.Client
	SummaryCache   cache.Store
	UserService    *service.UserService
	CheckinService *service.CheckinService
	ChatService    *service.ChatService
}

// New wires the repositories, services and the completion client together.
// The OpenRouter API key is resolved by the caller (env or Vault) and passed
// in explicitly so the completion client never reads ambient state.
func New(db *gorm.DB, cfg *config.Config, log *logger.Logger, openRouterKey string) (*Container, error) {
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)

	completions, err := ai.NewOpenRouterClient(ai.Config{
		APIKey:  openRouterKey,
		BaseURL: cfg.OpenRouter.BaseURL,
		Model:   cfg.OpenRouter.Model,
		Referer: cfg.OpenRouter.Referer,
		Title:   cfg.OpenRouter.Title,
		Timeout: cfg.OpenRouter.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	var summaryCache cache.Store
	switch cfg.Cache.Backend {
	case "redis":
		summaryCache = cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	default:
		summaryCache = cache.NewMemory(cfg.Cache.PurgeWindow)
	}

	userRepo := repository.NewGormUserRepository(db)
	chatRepo := repository.NewGormChatRepository(db)
	logRepo := repository.NewGormDailyLogRepository(db)

	chatOpts := service.ChatOptions{
		ChatMaxTokens:      cfg.OpenRouter.ChatMaxTokens,
		ChatTemperature:    cfg.OpenRouter.ChatTemperature,
		SummaryMaxTokens:   cfg.OpenRouter.SummaryMaxTokens,
		SummaryTemperature: cfg.OpenRouter.SummaryTemperature,
		SummaryCacheTTL:    cfg.Cache.TTL,
	}

	return &Container{
		DB:             db,
		Config:         cfg,
		Logger:         log,
		JWTService:     jwtService,
		Completions:    completions,
		SummaryCache:   summaryCache,
		UserService:    service.NewUserService(userRepo, jwtService),
		CheckinService: service.NewCheckinService(logRepo),
		ChatService:    service.NewChatService(chatRepo, logRepo, completions, summaryCache, log, chatOpts),
	}, nil
}
