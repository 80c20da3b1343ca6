package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BackendBaseURL != "http://localhost:8000" {
		t.Errorf("BackendBaseURL = %q", cfg.BackendBaseURL)
	}
	if cfg.BackendWSURL != "ws://localhost:8000" {
		t.Errorf("BackendWSURL = %q, want derived ws url", cfg.BackendWSURL)
	}
	if cfg.WSMaxReconnectAttempts != 5 {
		t.Errorf("WSMaxReconnectAttempts = %d", cfg.WSMaxReconnectAttempts)
	}
	if cfg.WSReconnectDelay != time.Second {
		t.Errorf("WSReconnectDelay = %v", cfg.WSReconnectDelay)
	}
	if cfg.ChatEchoPolicy != "echo" {
		t.Errorf("ChatEchoPolicy = %q", cfg.ChatEchoPolicy)
	}
	if !cfg.IsDevelopment() {
		t.Error("default config should count as development")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://vacaition.example.com")
	t.Setenv("WS_RECONNECT_DELAY_MS", "250")
	t.Setenv("CHAT_ECHO_POLICY", "optimistic")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BackendWSURL != "wss://vacaition.example.com" {
		t.Errorf("BackendWSURL = %q", cfg.BackendWSURL)
	}
	if cfg.WSReconnectDelay != 250*time.Millisecond {
		t.Errorf("WSReconnectDelay = %v", cfg.WSReconnectDelay)
	}
	if cfg.ChatEchoPolicy != "optimistic" {
		t.Errorf("ChatEchoPolicy = %q", cfg.ChatEchoPolicy)
	}
	if cfg.IsDevelopment() {
		t.Error("remote backend should not count as development")
	}
}

func TestLoadExplicitWSURLWins(t *testing.T) {
	t.Setenv("BACKEND_WS_URL", "wss://ws.vacaition.example.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BackendWSURL != "wss://ws.vacaition.example.com" {
		t.Errorf("BackendWSURL = %q", cfg.BackendWSURL)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"WS_MAX_RECONNECT_ATTEMPTS": "0",
		"WS_RECONNECT_DELAY_MS":     "-5",
		"CHAT_ECHO_POLICY":          "mirror",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() accepted %s=%s", key, value)
			}
		})
	}
}
