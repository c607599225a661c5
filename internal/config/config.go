package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned by Load when PLAINLY_API_KEY is not set
var ErrMissingAPIKey = errors.New("PLAINLY_API_KEY environment variable is required")

// Transports accepted by ServerConfig.Transport
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all configuration for the application
type Config struct {
	Plainly  PlainlyConfig
	Server   ServerConfig
	Redis    RedisConfig
	LogLevel string
}

// PlainlyConfig holds the credentials for the Plainly API
type PlainlyConfig struct {
	APIKey string
}

// ServerConfig holds MCP transport configuration
type ServerConfig struct {
	Transport    string
	Port         int
	ReadTimeout  int
	WriteTimeout int
}

// RedisConfig holds Redis-related configuration. An empty Addr disables tool event publishing.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Load loads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads the environment (and an optional .env file) without validating,
// so callers can apply command-line overrides first
func FromEnv() *Config {
	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	return &Config{
		Plainly: PlainlyConfig{
			APIKey: strings.TrimSpace(getEnv("PLAINLY_API_KEY", "")),
		},
		Server: ServerConfig{
			Transport:    strings.ToLower(getEnv("MCP_TRANSPORT", TransportStdio)),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 60),
		},
		Redis: RedisConfig{
			Addr:     getRedisAddr(),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Channel:  getEnv("REDIS_CHANNEL", "plainly:tool_events"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the settings that cannot fall back to a default
func (c *Config) Validate() error {
	c.Plainly.APIKey = strings.TrimSpace(c.Plainly.APIKey)
	c.Server.Transport = strings.ToLower(strings.TrimSpace(c.Server.Transport))
	if c.Plainly.APIKey == "" {
		return ErrMissingAPIKey
	}
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unsupported MCP_TRANSPORT %q (want %s or %s)", c.Server.Transport, TransportStdio, TransportHTTP)
	}
	if c.Server.Transport == TransportHTTP && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getRedisAddr prefers REDIS_URL (with or without the redis:// scheme) over REDIS_ADDR.
// Redis stays disabled when neither is set.
func getRedisAddr() string {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return strings.TrimPrefix(url, "redis://")
	}
	return getEnv("REDIS_ADDR", "")
}
