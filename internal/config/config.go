package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port             string
	DBConn           string
	LogLevel         string
	JWTSecret        string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	AveragesCacheTTL time.Duration
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SenderEmail      string
	MilestoneCron    string
	EngineConfigPath string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DBConn:           getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=commissions sslmode=disable"),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SenderEmail:      getEnv("SENDER_EMAIL", "targets@commission-tracker.local"),
		MilestoneCron:    getEnv("MILESTONE_CRON", "0 2 * * *"),
		EngineConfigPath: getEnv("ENGINE_CONFIG", ""),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}
	cfg.RedisDB = redisDB

	ttl, err := time.ParseDuration(getEnv("AVERAGES_CACHE_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("AVERAGES_CACHE_TTL must be a duration: %w", err)
	}
	cfg.AveragesCacheTTL = ttl

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.MilestoneCron == "" {
		return nil, fmt.Errorf("MILESTONE_CRON is required")
	}

	return cfg, nil
}

// NotificationsEnabled reports whether SMTP settings are present
func (c *Config) NotificationsEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
