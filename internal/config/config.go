package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DBPath             string
	SecretKey          string
	TokenTTLMinutes    int
	CORSOrigins        []string
	FrontendURL        string
	ArticleFeedURL     string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	EncryptionKey      string
	GeminiAPIKey       string
}

// Load reads settings from the environment, consulting .env when present.
// Only SECRET_KEY is hard-required; the Google and Gemini integrations stay
// dormant until their credentials are configured.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := Config{
		Port:               getEnv("PORT", "8000"),
		DBPath:             getEnv("DB_PATH", filepath.Join("data", "aletheia.db")),
		SecretKey:          getEnv("SECRET_KEY", ""),
		TokenTTLMinutes:    getEnvAsInt("JWT_EXPIRE_MINUTES", 10080),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		ArticleFeedURL:     getEnv("ARTICLE_FEED_URL", "https://www.sciencedaily.com/rss/health_medicine/menopause.xml"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", ""),
		EncryptionKey:      getEnv("ENCRYPTION_KEY", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
	}

	// The frontend origin is always allowed; CORS_ORIGINS widens the list.
	origins := getEnv("CORS_ORIGINS", cfg.FrontendURL)
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, trimmed)
		}
	}

	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY environment variable is required")
	}

	return cfg
}

func (cfg Config) GoogleConfigured() bool {
	return cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" && cfg.GoogleRedirectURI != "" && cfg.EncryptionKey != ""
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
