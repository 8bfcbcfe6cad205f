package services

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	GoogleAPIKey     string
	GenAIBaseURL     string
	DescriptionModel string
	ImageModel       string

	SessionTTL      time.Duration
	UploadBodyLimit string

	SentryDSN string
	LogLevel  string
}

// LoadConfig reads an optional .env file and then the process environment.
// The Google API key is not validated here; a missing key fails the first
// provider call instead.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	sessionTTL, err := time.ParseDuration(GetEnv("SESSION_TTL", "2h"))
	if err != nil {
		log.Printf("Invalid SESSION_TTL, falling back to 2h: %v", err)
		sessionTTL = 2 * time.Hour
	}

	return &Config{
		Port:             GetEnv("PORT", "8083"),
		Env:              GetEnv("ENV", "local"),
		GoogleAPIKey:     os.Getenv("GOOGLE_API_KEY"),
		GenAIBaseURL:     GetEnv("GOOGLE_GENAI_BASE_URL", ""),
		DescriptionModel: GetEnv("DESCRIPTION_MODEL", Pro25.String()),
		ImageModel:       GetEnv("IMAGE_MODEL", Flash25Image.String()),
		SessionTTL:       sessionTTL,
		UploadBodyLimit:  GetEnv("UPLOAD_BODY_LIMIT", "20M"),
		SentryDSN:        GetEnv("SENTRY_DSN", ""),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
	}
}

func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
