package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type config struct {
	Addr       string
	Name       string
	Start      int64
	Step       int64
	Throttle   time.Duration
	Socks5     string
	RosterFile string
}

func loadConfig() config {
	_ = godotenv.Load()
	return config{
		Addr:       getEnv("COORDINATOR_ADDR", "127.0.0.1:5001"),
		Name:       getEnv("PEER_NAME", "Client1"),
		Start:      getInt64("PEER_START", 1),
		Step:       getInt64("PEER_STEP", 2),
		Throttle:   getDuration("SEND_THROTTLE", time.Second),
		Socks5:     getEnv("PROXY_SOCKS5", ""),
		RosterFile: getEnv("ROSTER_FILE", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
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
