package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultDailyLimit applies to every user without a per-user override.
const DefaultDailyLimit = 5

type AppConfig struct {
	CommandPrefix string
	DiscordToken  string

	LikeAPIBaseURL string
	LikeAPIKey     string
	LikeAPITimeout time.Duration

	DataDir     string
	DatabaseURL string

	HTTPPort       string
	AdminJWTSecret string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		CommandPrefix:  getEnv("COMMAND_PREFIX", "!"),
		DiscordToken:   os.Getenv("DISCORD_BOT_TOKEN"),
		LikeAPIBaseURL: getEnv("LIKE_API_BASE_URL", "https://likexthug.vercel.app/like"),
		LikeAPIKey:     getEnv("LIKE_API_KEY", "GREAT"),
		LikeAPITimeout: getDurationEnv("LIKE_API_TIMEOUT", 15*time.Second),
		DataDir:        getEnv("DATA_DIR", "data"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		HTTPPort:       getEnv("PORT", "5000"),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
