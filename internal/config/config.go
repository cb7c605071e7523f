package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Comment rate limiting
	RateLimit RateLimitConfig

	// Weather/stock widget upstreams
	Widgets WidgetConfig

	// Public site settings used for generated feeds
	Site SiteConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RateLimitConfig bounds comment submissions per IP/email
type RateLimitConfig struct {
	Window        time.Duration
	MaxSubmission int
}

// WidgetConfig holds third-party API settings. Empty API keys switch
// the corresponding widget to deterministic mock data.
type WidgetConfig struct {
	WeatherAPIKey  string
	WeatherBaseURL string
	StockAPIKey    string
	StockBaseURL   string
	Timeout        time.Duration
}

// SiteConfig holds public-facing site settings
type SiteConfig struct {
	Name    string
	BaseURL string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "newsdesk"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Window:        getDurationEnv("COMMENT_RATE_WINDOW", 5*time.Minute),
			MaxSubmission: getIntEnv("COMMENT_RATE_MAX", 3),
		},
		Widgets: WidgetConfig{
			WeatherAPIKey:  getEnv("WEATHER_API_KEY", ""),
			WeatherBaseURL: getEnv("WEATHER_API_URL", "https://api.weatherapi.com/v1"),
			StockAPIKey:    getEnv("STOCK_API_KEY", ""),
			StockBaseURL:   getEnv("STOCK_API_URL", "https://www.alphavantage.co/query"),
			Timeout:        getDurationEnv("WIDGET_TIMEOUT", 5*time.Second),
		},
		Site: SiteConfig{
			Name:    getEnv("SITE_NAME", "Newsdesk"),
			BaseURL: getEnv("SITE_BASE_URL", "http://localhost:8080"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.RateLimit.MaxSubmission <= 0 {
		return fmt.Errorf("COMMENT_RATE_MAX must be positive")
	}
	if c.Site.BaseURL == "" {
		return fmt.Errorf("SITE_BASE_URL is required")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
