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

	// Blog content and engagement configuration
	Blog BlogConfig

	// Visitor session configuration
	Session SessionConfig

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

// BlogConfig holds content listing and engagement settings
type BlogConfig struct {
	// AdminEmail identifies the site owner's own comments and receives
	// root-comment notifications.
	AdminEmail string
	// PageSize is the number of articles per listing page.
	PageSize int
	// PageEdgeCount is the number of leading/trailing page numbers always
	// shown in a pagination window.
	PageEdgeCount int
	// PageDisplayCount is the number of contiguous page numbers shown
	// around the current page.
	PageDisplayCount int
	// PopularCount is the number of articles in the popular sidebar listing.
	PopularCount int
}

// SessionConfig holds visitor session store settings
type SessionConfig struct {
	Backend       string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
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
			Name:         getEnv("DB_NAME", "content_engagement"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Blog: BlogConfig{
			AdminEmail:       getEnv("BLOG_ADMIN_EMAIL", ""),
			PageSize:         getIntEnv("BLOG_PAGE_SIZE", 10),
			PageEdgeCount:    getIntEnv("BLOG_PAGE_EDGE_COUNT", 2),
			PageDisplayCount: getIntEnv("BLOG_PAGE_DISPLAY_COUNT", 4),
			PopularCount:     getIntEnv("BLOG_POPULAR_COUNT", 5),
		},
		Session: SessionConfig{
			Backend:       getEnv("SESSION_BACKEND", "memory"),
			RedisAddr:     getEnv("SESSION_REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("SESSION_REDIS_PASSWORD", ""),
			RedisDB:       getIntEnv("SESSION_REDIS_DB", 0),
			TTL:           getDurationEnv("SESSION_TTL", 30*24*time.Hour),
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
	if c.Blog.PageSize < 1 {
		return fmt.Errorf("BLOG_PAGE_SIZE must be positive")
	}
	if c.Session.Backend != "memory" && c.Session.Backend != "redis" {
		return fmt.Errorf("SESSION_BACKEND must be memory or redis")
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
