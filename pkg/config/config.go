package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server struct {
		Port    string
		Env     string
		Timeout time.Duration
	}

	// Database configuration
	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		MaxConns int
	}

	// JWT configuration
	JWT struct {
		Secret string
		Expiry time.Duration
	}

	// OpenRouter completion service configuration
	OpenRouter struct {
		APIKey             string
		BaseURL            string
		Model              string
		Referer            string
		Title              string
		Timeout            time.Duration
		ChatMaxTokens      int
		ChatTemperature    float64
		SummaryMaxTokens   int
		SummaryTemperature float64
	}

	// Cache settings for looked-up day summaries
	Cache struct {
		Backend       string // memory or redis
		TTL           time.Duration
		PurgeWindow   time.Duration
		RedisAddr     string
		RedisPassword string
		RedisDB       int
	}

	// Security configuration
	Security struct {
		RateLimit      float64
		RateLimitBurst int
		AllowedOrigins []string
	}

	// Logging configuration
	Logging struct {
		Level  string
		Format string
	}
}

var (
	instance *Config
	once     sync.Once
)

// New creates a new Config instance with values from environment variables.
// Uses singleton pattern to ensure only one instance exists.
func New() *Config {
	once.Do(func() {
		// Load .env file if exists
		godotenv.Load()

		instance = &Config{}

		// Server config
		instance.Server.Port = getEnvString("PORT", "8080")
		instance.Server.Env = getEnvString("APP_ENV", "development")
		instance.Server.Timeout = getEnvDuration("SERVER_TIMEOUT", 30*time.Second)

		// Database config
		instance.Database.Host = getEnvString("DB_HOST", "localhost")
		instance.Database.Port = getEnvString("DB_PORT", "5432")
		instance.Database.User = getEnvString("DB_USER", "postgres")
		instance.Database.Password = getEnvString("DB_PASSWORD", "postgres")
		instance.Database.Name = getEnvString("DB_NAME", "mental-health")
		instance.Database.SSLMode = getEnvString("DB_SSL_MODE", "disable")
		instance.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 20)

		// JWT config
		instance.JWT.Secret = getEnvString("JWT_SECRET", "default-jwt-secret-do-not-use-in-production")
		instance.JWT.Expiry = getEnvDuration("JWT_EXPIRY", 24*time.Hour)

		// OpenRouter config
		instance.OpenRouter.APIKey = getEnvString("OPENROUTER_API_KEY", "")
		instance.OpenRouter.BaseURL = getEnvString("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
		instance.OpenRouter.Model = getEnvString("OPENROUTER_MODEL", "openai/gpt-3.5-turbo")
		instance.OpenRouter.Referer = getEnvString("OPENROUTER_REFERER", "http://localhost:3000")
		instance.OpenRouter.Title = getEnvString("OPENROUTER_TITLE", "Mental Health Assistant")
		instance.OpenRouter.Timeout = getEnvDuration("OPENROUTER_TIMEOUT", 30*time.Second)
		instance.OpenRouter.ChatMaxTokens = getEnvInt("CHAT_MAX_TOKENS", 200)
		instance.OpenRouter.ChatTemperature = getEnvFloat("CHAT_TEMPERATURE", 0.7)
		instance.OpenRouter.SummaryMaxTokens = getEnvInt("SUMMARY_MAX_TOKENS", 150)
		instance.OpenRouter.SummaryTemperature = getEnvFloat("SUMMARY_TEMPERATURE", 0.5)

		// Cache settings
		instance.Cache.Backend = getEnvString("CACHE_BACKEND", "memory")
		instance.Cache.TTL = getEnvDuration("CACHE_TTL", 24*time.Hour)
		instance.Cache.PurgeWindow = getEnvDuration("CACHE_PURGE_WINDOW", 10*time.Minute)
		instance.Cache.RedisAddr = getEnvString("REDIS_ADDR", "localhost:6379")
		instance.Cache.RedisPassword = getEnvString("REDIS_PASSWORD", "")
		instance.Cache.RedisDB = getEnvInt("REDIS_DB", 0)

		// Security config
		instance.Security.RateLimit = getEnvFloat("RATE_LIMIT", 5)
		instance.Security.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 10)
		instance.Security.AllowedOrigins = getEnvStringSlice("ALLOWED_ORIGINS", []string{"*"})

		// Logging config
		instance.Logging.Level = getEnvString("LOG_LEVEL", "info")
		instance.Logging.Format = getEnvString("LOG_FORMAT", "json")
	})

	return instance
}

// Get returns the singleton Config instance
func Get() *Config {
	if instance == nil {
		return New()
	}
	return instance
}

// Helper functions to read environment variables with default values

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
