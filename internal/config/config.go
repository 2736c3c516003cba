package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	RedisAddr     string
	RedisPassword string

	GameEngineURL string
	EngineTimeout time.Duration
}

func Load() Config {

	cfg := Config{

		AppPort: getenv("PORT", "5000"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		GameEngineURL: getenv("GAME_ENGINE_URL", "http://localhost:8000"),
		EngineTimeout: time.Duration(getenvInt("ENGINE_TIMEOUT", 5)) * time.Second,
	}

	return cfg

}

// getenv returns the environment value or a local-development default.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
