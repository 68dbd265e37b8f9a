package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	// APP
	AppEnv string
	Port   string

	// API client
	BaseURL     string
	HTTPTimeout int // seconds
	PageSize    int

	// Credential store
	TokenPath    string
	TokenTTLDays int

	// UI
	Theme        string
	UIConfigPath string

	// Stub backend
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	Store         string // "memory" or "postgres"

	// Database (postgres store only)
	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string
}

func Load() (*Config, error) {
	cfg := &Config{
		// App
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "3000"),

		// API client
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		HTTPTimeout: getEnvInt("HTTP_TIMEOUT_SECONDS", 20),
		PageSize:    getEnvInt("PAGE_SIZE", 10),

		// Credential store
		TokenPath:    getEnv("TOKEN_PATH", ""),
		TokenTTLDays: getEnvInt("TOKEN_TTL_DAYS", 7),

		// UI
		Theme:        getEnv("THEME", "light"),
		UIConfigPath: getEnv("UI_CONFIG_PATH", ""),

		// Stub backend
		JWTSecret:     getEnv("JWT_SECRET", "secret123"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@staffdesk.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "staffdesk-2025"),
		Store:         getEnv("STORE", "memory"),

		// DB
		DBHost: getEnv("DB_HOST", "127.0.0.1"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),
		DBName: getEnv("DB_NAME", "staffdesk_db"),
	}

	if cfg.TokenPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.TokenPath = filepath.Join(dir, "staffdesk", "token.json")
		} else {
			cfg.TokenPath = ".staffdesk-token.json"
		}
	}
	if cfg.UIConfigPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.UIConfigPath = filepath.Join(dir, "staffdesk", "config.json")
		} else {
			cfg.UIConfigPath = ".staffdesk-config.json"
		}
	}

	return cfg, nil
}

// getEnv returns environment variable or default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns int from env or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
