package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Service identity
	EdgeRegion string `env:"EDGE_REGION" envDefault:"global"`
	AppVersion string `env:"APP_VERSION" envDefault:"1.0.0"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Push provider Config
	PushProviderURL string        `env:"PUSH_PROVIDER_URL"`
	PushProviderKey string        `env:"PUSH_PROVIDER_KEY"`
	DeliveryTimeout time.Duration `env:"DELIVERY_TIMEOUT" envDefault:"5s"`

	// Dispatch Config
	StoreTimeout         time.Duration `env:"STORE_TIMEOUT" envDefault:"2s"`
	BatchSize            int           `env:"BATCH_SIZE" envDefault:"100"`
	MaxConcurrentBatches int           `env:"MAX_CONCURRENT_BATCHES" envDefault:"0"`
	RegionTablePath      string        `env:"REGION_TABLE_PATH"`
	RateLimit            string        `env:"RATE_LIMIT" envDefault:"100-S"`

	// Maintenance Config
	AnalyticsRetention time.Duration `env:"ANALYTICS_RETENTION" envDefault:"720h"`
	TargetRetention    time.Duration `env:"TARGET_RETENTION" envDefault:"720h"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		EdgeRegion:           getEnv("EDGE_REGION", "global"),
		AppVersion:           getEnv("APP_VERSION", "1.0.0"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:            os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		PushProviderURL:      os.Getenv("PUSH_PROVIDER_URL"),
		PushProviderKey:      os.Getenv("PUSH_PROVIDER_KEY"),
		DeliveryTimeout:      getEnvAsDuration("DELIVERY_TIMEOUT", 5*time.Second),
		StoreTimeout:         getEnvAsDuration("STORE_TIMEOUT", 2*time.Second),
		BatchSize:            getEnvAsInt("BATCH_SIZE", 100),
		MaxConcurrentBatches: getEnvAsInt("MAX_CONCURRENT_BATCHES", 0),
		RegionTablePath:      os.Getenv("REGION_TABLE_PATH"),
		RateLimit:            getEnv("RATE_LIMIT", "100-S"),
		AnalyticsRetention:   getEnvAsDuration("ANALYTICS_RETENTION", 30*24*time.Hour),
		TargetRetention:      getEnvAsDuration("TARGET_RETENTION", 30*24*time.Hour),
		WebhookURL:           os.Getenv("WEBHOOK_URL"),
		WebhookSecret:        os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:       getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:    getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:     getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("BATCH_SIZE must be positive, got %d", cfg.BatchSize)
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
