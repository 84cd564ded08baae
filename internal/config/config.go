package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything read from the environment at startup. Nothing
// re-reads env vars after boot; middleware and services get this by value.
type Config struct {
	Port            string
	DatabaseURL     string
	AuthBaseURL     string        // identity provider, e.g. https://auth.example.com
	AllowOrigin     string        // CORS Access-Control-Allow-Origin
	RateLimitMax    int           // accepted submissions per identity per window
	RateLimitWindow time.Duration // fixed window, anchored to first action
}

func Load() Config {
	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=compass port=5432 sslmode=disable"),
		AuthBaseURL:     getenv("AUTH_BASE_URL", "http://localhost:9999"),
		AllowOrigin:     getenv("CORS_ALLOW_ORIGIN", "*"),
		RateLimitMax:    getenvInt("RATE_LIMIT_MAX", 5),
		RateLimitWindow: time.Duration(getenvInt("RATE_LIMIT_WINDOW_MINUTES", 60)) * time.Minute,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
