package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultEmbedModel is the pretrained embedding model used when none is
// configured. Changing the model implicitly invalidates cached embeddings,
// since vectors from different models live in different spaces.
const DefaultEmbedModel = "text-embedding-004"

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	AI       AIConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	JWTSecret   string
	ResumeDir   string
	MigrateDir  string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

type AIConfig struct {
	// APIKey may be empty: the service then runs rule-based only and the
	// encoder reports itself unavailable on first use.
	APIKey     string
	EmbedModel string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		JWTSecret:   req("JWT_ACCESS_SECRET"),
		ResumeDir:   opt("RESUME_DIR", "data/resumes"),
		MigrateDir:  opt("MIGRATE_DIR", "migrations"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", ""),
		DBPort:     opt("DB_PORT", ""),
		DBName:     opt("DB_NAME", ""),
		DBUser:     opt("DB_USER", ""),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", ""),
	}

	cfg.AI = AIConfig{
		APIKey:     opt("GEMINI_API_KEY", ""),
		EmbedModel: opt("AI_EMBED_MODEL", DefaultEmbedModel),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
