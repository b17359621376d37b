package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries every runtime knob the service needs. It replaces the
// scattered module-level constants the endpoints used to reach for.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	UploadDir         string
	StaticDir         string
	AllowedExtensions map[string]bool

	WikipediaBaseURL string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "5050"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SessionTTL:    24 * time.Hour,
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		StaticDir:     getEnv("STATIC_DIR", "web/static"),
		AllowedExtensions: map[string]bool{
			".png":  true,
			".jpg":  true,
			".jpeg": true,
			".gif":  true,
		},
		WikipediaBaseURL: getEnv("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
