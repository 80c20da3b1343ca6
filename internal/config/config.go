// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Client side: where the backend lives and how to talk to it.
	BackendBaseURL string
	BackendWSURL   string
	AccessToken    string

	// Reconnect and send tunables for the chat channel.
	WSMaxReconnectAttempts int
	WSReconnectDelay       time.Duration
	WSSendRetryDelay       time.Duration
	ChatEchoPolicy         string

	// Dev server side.
	Port        string
	FrontendURL string
	DBPath      string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		BackendBaseURL:         getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		BackendWSURL:           getEnv("BACKEND_WS_URL", ""),
		AccessToken:            getEnv("ACCESS_TOKEN", ""),
		WSMaxReconnectAttempts: getEnvInt("WS_MAX_RECONNECT_ATTEMPTS", 5),
		WSReconnectDelay:       time.Duration(getEnvInt("WS_RECONNECT_DELAY_MS", 1000)) * time.Millisecond,
		WSSendRetryDelay:       time.Duration(getEnvInt("WS_SEND_RETRY_DELAY_MS", 1000)) * time.Millisecond,
		ChatEchoPolicy:         getEnv("CHAT_ECHO_POLICY", "echo"),
		Port:                   getEnv("PORT", "8000"),
		FrontendURL:            getEnv("FRONTEND_URL", ""),
		DBPath:                 getEnv("DB_PATH", "./data/vacaition.db"),
	}

	if cfg.BackendWSURL == "" {
		cfg.BackendWSURL = deriveWSURL(cfg.BackendBaseURL)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.BackendBaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL cannot be empty")
	}
	if c.BackendWSURL == "" {
		return fmt.Errorf("BACKEND_WS_URL cannot be empty")
	}
	if c.WSMaxReconnectAttempts <= 0 {
		return fmt.Errorf("WS_MAX_RECONNECT_ATTEMPTS must be > 0")
	}
	if c.WSReconnectDelay <= 0 {
		return fmt.Errorf("WS_RECONNECT_DELAY_MS must be > 0")
	}
	if c.WSSendRetryDelay <= 0 {
		return fmt.Errorf("WS_SEND_RETRY_DELAY_MS must be > 0")
	}
	switch c.ChatEchoPolicy {
	case "echo", "optimistic":
	default:
		return fmt.Errorf("CHAT_ECHO_POLICY must be \"echo\" or \"optimistic\"")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	return nil
}

// IsDevelopment returns true if running against a local backend.
func (c *Config) IsDevelopment() bool {
	return strings.Contains(c.BackendBaseURL, "localhost") ||
		strings.Contains(c.BackendBaseURL, "127.0.0.1")
}

// ChannelPolicy converts the tunables into the chat package's shape.
func (c *Config) ChannelPolicy() (maxAttempts int, reconnectDelay, sendRetryDelay time.Duration) {
	return c.WSMaxReconnectAttempts, c.WSReconnectDelay, c.WSSendRetryDelay
}

// deriveWSURL maps an http base URL onto its websocket counterpart.
func deriveWSURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
