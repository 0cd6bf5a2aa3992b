package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// It follows the 12-factor app methodology by prioritizing environment variables.
type Config struct {
	AppPort     string
	AppMode     string
	MongoURI    string
	DBName      string
	FrontendURL string

	// GeminiAPIKey has no default on purpose: the model credential must come
	// from the environment, never from source.
	GeminiAPIKey string
	GeminiModel  string

	JWTSecret    string
	JWTExpiryMin int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthRateLimit int
	AskRateLimit  int
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		AppMode:       getEnv("APP_MODE", "debug"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("DB_NAME", "cartalk"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		JWTExpiryMin:  getEnvAsInt("JWT_EXPIRY_MIN", 60),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		AuthRateLimit: getEnvAsInt("AUTH_RATE_LIMIT", 5),
		AskRateLimit:  getEnvAsInt("ASK_RATE_LIMIT", 20),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	return cfg, nil
}

// RateLimitEnabled reports whether redis-backed rate limiting is configured.
func (c *Config) RateLimitEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
