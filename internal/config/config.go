package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Speech  SpeechConfig
	Storage StorageConfig
	Qdrant  QdrantConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type GeminiConfig struct {
	APIKey              string
	Model               string
	EmbedModel          string
	Timeout             time.Duration
	QuestionTemperature float32
}

type SpeechConfig struct {
	Backend         string
	Language        string
	VADFilter       bool
	Timeout         time.Duration
	CredentialsPath string
}

type StorageConfig struct {
	MediaPath      string
	MediaURLPrefix string
	MaxFileSize    int64
	GuideDocsPath  string
}

// QdrantConfig is optional; an empty URL turns question guide retrieval off.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

const (
	SpeechBackendGemini = "gemini"
	SpeechBackendGoogle = "google"
	SpeechBackendNone   = "none"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8000"),
			Env:            getEnv("ENV", "development"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Gemini: GeminiConfig{
			APIKey:              getEnv("GEMINI_API_KEY", ""),
			Model:               getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel:          getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			Timeout:             getEnvAsDuration("LLM_TIMEOUT", "60s"),
			QuestionTemperature: getEnvAsFloat32("QUESTION_TEMPERATURE", 0.7),
		},
		Speech: SpeechConfig{
			Backend:         strings.ToLower(getEnv("STT_BACKEND", SpeechBackendGemini)),
			Language:        getEnv("STT_LANGUAGE", "en"),
			VADFilter:       getEnvAsBool("STT_VAD_FILTER", true),
			Timeout:         getEnvAsDuration("STT_TIMEOUT", "120s"),
			CredentialsPath: getEnv("GOOGLE_CREDENTIALS_PATH", ""),
		},
		Storage: StorageConfig{
			MediaPath:      getEnv("MEDIA_PATH", "./media"),
			MediaURLPrefix: strings.TrimRight(getEnv("MEDIA_URL_PREFIX", "/media"), "/"),
			MaxFileSize:    getEnvAsInt64("MAX_FILE_SIZE", 26214400),
			GuideDocsPath:  getEnv("GUIDE_DOCS_PATH", "./reference_docs"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "interview_question_guides"),
		},
	}
}

// Validate reports settings the process cannot start without.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is missing")
	}

	switch c.Speech.Backend {
	case SpeechBackendGemini, SpeechBackendGoogle, SpeechBackendNone:
	default:
		return fmt.Errorf("unknown STT_BACKEND %q (want gemini, google or none)", c.Speech.Backend)
	}

	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize)
	}

	return nil
}

func (c *Config) QdrantEnabled() bool {
	return c.Qdrant.URL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	var items []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
