package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type config struct {
	Host         string
	Port         string
	PollInterval time.Duration
	TurnTimeout  time.Duration
	AdminEnabled bool
	AdminHost    string
	AdminPort    string
}

func loadConfig() config {
	_ = godotenv.Load()
	return config{
		Host:         getEnv("SERVER_HOST", "0.0.0.0"),
		Port:         getEnv("SERVER_PORT", "5001"),
		PollInterval: getDuration("POLL_INTERVAL", 100*time.Millisecond),
		TurnTimeout:  getDuration("TURN_TIMEOUT", 0),
		AdminEnabled: getEnv("ADMIN_ENABLED", "true") == "true",
		AdminHost:    getEnv("ADMIN_HOST", "127.0.0.1"),
		AdminPort:    getEnv("ADMIN_PORT", "8080"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
