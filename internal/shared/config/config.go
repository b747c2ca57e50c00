package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	LLMProvider     string
	LLMModel        string
	GoogleAPIKey    string
	OpenAIAPIKey    string
	DatabaseURL     string
	AnalysisLimit   int
}

// ErrMissingCredential indicates the selected LLM provider has no API key.
// It is the only fatal configuration error at startup.
var ErrMissingCredential = errors.New("missing LLM credential")

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		LLMProvider:     normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:        getEnv("LLM_MODEL", "gemini-2.0-flash"),
		GoogleAPIKey:    getEnv("GOOGLE_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AnalysisLimit:   getEnvInt("ANALYSIS_LIMIT", 10),
	}
}

// Validate checks that the selected LLM provider has a credential.
func (c Config) Validate() error {
	switch c.LLMProvider {
	case "openai":
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			return errors.Join(ErrMissingCredential, errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai"))
		}
	default:
		if strings.TrimSpace(c.GoogleAPIKey) == "" {
			return errors.Join(ErrMissingCredential, errors.New("GOOGLE_API_KEY is required when LLM_PROVIDER=gemini"))
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	default:
		return "gemini"
	}
}
