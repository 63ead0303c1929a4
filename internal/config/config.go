package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI      string
	DBName        string
	JWTSecret     string
	TokenTTL      time.Duration
	Environment   string
	ClientURLs    []string
	Port          string
	UploadTimeout time.Duration

	ImageKitPrivateKey  string
	ImageKitPublicKey   string
	ImageKitURLEndpoint string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:      getEnvOrDefault("MONGO_URI", ""),
		DBName:        getEnvOrDefault("DB_NAME", "clothshop"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", ""),
		TokenTTL:      getDurationEnv("TOKEN_TTL", 7, 24*time.Hour),
		Environment:   getEnvOrDefault("APP_ENV", "development"),
		ClientURLs:    splitList(getEnvOrDefault("CLIENT_URL", "http://localhost:3000,http://localhost:5173")),
		Port:          getEnvOrDefault("PORT", "8080"),
		UploadTimeout: getDurationEnv("UPLOAD_TIMEOUT", 30, time.Second),

		ImageKitPrivateKey:  getEnvOrDefault("IMAGEKIT_PRIVATE_KEY", ""),
		ImageKitPublicKey:   getEnvOrDefault("IMAGEKIT_PUBLIC_KEY", ""),
		ImageKitURLEndpoint: getEnvOrDefault("IMAGEKIT_URL_ENDPOINT", ""),
	}
}

// IsProduction controls cookie strictness; anything other than "production"
// keeps the relaxed local-development cookie policy.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
