package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"RequestTimeout", cfg.RequestTimeout, 0},
		{"MaxUploadSize", cfg.MaxUploadSize, int64(2147483648)},
		{"AppPassword", cfg.AppPassword, "123456"},
		{"SessionProvider", cfg.SessionProvider, "memory"},
		{"SessionTTL", cfg.SessionTTL, 43200},
		{"APIKey", cfg.APIKey, ""},
		{"APIBaseURL", cfg.APIBaseURL, ""},
		{"TextModel", cfg.TextModel, "gemini-2.5-flash"},
		{"MultimodalModel", cfg.MultimodalModel, "gemini-2.5-flash"},
		{"ReasoningModel", cfg.ReasoningModel, "gemini-3-pro-preview"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_KEY", "secret")
	t.Setenv("API_BASE_URL", "https://proxy.example.com/v1/")
	t.Setenv("APP_PASSWORD", "Tuesday")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("expected api key 'secret', got %s", cfg.APIKey)
	}
	if cfg.APIBaseURL != "https://proxy.example.com/v1/" {
		t.Errorf("unexpected base url %s", cfg.APIBaseURL)
	}
	if cfg.AppPassword != "Tuesday" {
		t.Errorf("expected password 'Tuesday', got %s", cfg.AppPassword)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("HUB_DOTENV_PROBE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("HUB_DOTENV_PROBE") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("HUB_DOTENV_PROBE"); got != "from-file" {
		t.Errorf("expected value from file, got %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing file should not be an error, got %v", err)
	}
}
