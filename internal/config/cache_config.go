package config

import "time"

type CacheConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	StatsTTL      time.Duration
}

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,
		StatsTTL:      time.Minute,
	}
}

// Enabled reports whether a redis instance has been configured at all.
// The cache is strictly optional; everything works without it.
func (c *CacheConfig) Enabled() bool {
	return c.RedisHost != ""
}
