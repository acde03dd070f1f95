package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("STT_BACKEND", "")
	t.Setenv("MEDIA_URL_PREFIX", "")
	t.Setenv("LLM_TIMEOUT", "")

	cfg := Load()

	if cfg.Gemini.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want test-key", cfg.Gemini.APIKey)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Speech.Backend != SpeechBackendGemini {
		t.Errorf("Speech.Backend = %q, want %q", cfg.Speech.Backend, SpeechBackendGemini)
	}
	if cfg.Storage.MediaURLPrefix != "/media" {
		t.Errorf("MediaURLPrefix = %q, want /media", cfg.Storage.MediaURLPrefix)
	}
	if cfg.Gemini.Timeout != 60*time.Second {
		t.Errorf("Gemini.Timeout = %v, want 60s", cfg.Gemini.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("STT_BACKEND", "Google")
	t.Setenv("STT_VAD_FILTER", "false")
	t.Setenv("STT_TIMEOUT", "5s")
	t.Setenv("MEDIA_URL_PREFIX", "/files/")
	t.Setenv("QDRANT_URL", "http://localhost:6334")

	cfg := Load()

	if got := cfg.Server.AllowedOrigins; len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", got)
	}
	if cfg.Speech.Backend != SpeechBackendGoogle {
		t.Errorf("Speech.Backend = %q", cfg.Speech.Backend)
	}
	if cfg.Speech.VADFilter {
		t.Error("VADFilter = true, want false")
	}
	if cfg.Speech.Timeout != 5*time.Second {
		t.Errorf("Speech.Timeout = %v", cfg.Speech.Timeout)
	}
	if cfg.Storage.MediaURLPrefix != "/files" {
		t.Errorf("MediaURLPrefix = %q, want /files", cfg.Storage.MediaURLPrefix)
	}
	if !cfg.QdrantEnabled() {
		t.Error("QdrantEnabled() = false, want true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing api key", func(c *Config) { c.Gemini.APIKey = "" }, true},
		{"unknown backend", func(c *Config) { c.Speech.Backend = "whisper" }, true},
		{"none backend", func(c *Config) { c.Speech.Backend = SpeechBackendNone }, false},
		{"zero body limit", func(c *Config) { c.Storage.MaxFileSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Gemini:  GeminiConfig{APIKey: "k"},
				Speech:  SpeechConfig{Backend: SpeechBackendGemini},
				Storage: StorageConfig{MaxFileSize: 1024},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
