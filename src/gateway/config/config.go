package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	IntakeURL      string
	IntakeTimeout  time.Duration
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	timeout, _ := strconv.Atoi(getenv("INTAKE_TIMEOUT_SECONDS", "10"))
	rate, _ := strconv.Atoi(getenv("RATE_LIMIT", "30"))
	window, _ := strconv.Atoi(getenv("RATE_WINDOW_SECONDS", "60"))
	return Config{
		Port:           getenv("PORT", "8080"),
		IntakeURL:      getenv("INTAKE_URL", "http://127.0.0.1:8081"),
		IntakeTimeout:  time.Duration(timeout) * time.Second,
		AllowedOrigins: []string{getenv("ALLOWED_ORIGIN", "http://localhost:3000")},
		RateLimit:      rate,
		RateWindow:     time.Duration(window) * time.Second,
	}
}
