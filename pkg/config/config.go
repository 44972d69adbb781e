package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data Dragon configuration struct.
type DDragonConfiguration struct {
	BaseURL           string
	Version           string
	Language          string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Texture cache configuration struct.
type TexturesConfiguration struct {
	Capacity        int
	TTL             time.Duration
	PrefetchWorkers int
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

// Bucket used to upload the log files.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// Revalidation of the shared detail store.
type RevalidationConfiguration struct {
	Workers int
	// Hour of the day (UTC) of the scheduled run.
	Hour int
}

// UI configuration struct.
type UIConfiguration struct {
	BackgroundImage string
}

// Config holds every configuration of the browser.
type Config struct {
	DDragon      DDragonConfiguration
	Textures     TexturesConfiguration
	Redis        RedisConfiguration
	Bucket       BucketConfiguration
	Revalidation RevalidationConfiguration
	UI           UIConfiguration
}

// Load the .env file (outside docker) and read the configuration from the environment.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "docker" {
		// A missing .env is fine, everything has a default.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration only from the current environment.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.DDragon.BaseURL = getEnvOrDefault("DDRAGON_URL", "https://ddragon.leagueoflegends.com/")
	cfg.DDragon.Version = getEnvOrDefault("DDRAGON_VERSION", "14.14.1")
	cfg.DDragon.Language = getEnvOrDefault("DDRAGON_LANGUAGE", "en_US")
	if cfg.DDragon.Timeout, err = getDurationOrDefault("DDRAGON_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.DDragon.RequestsPerSecond, err = getFloatOrDefault("DDRAGON_RPS", 20); err != nil {
		return nil, err
	}

	if cfg.Textures.Capacity, err = getIntOrDefault("TEXTURE_CACHE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.Textures.TTL, err = getDurationOrDefault("TEXTURE_CACHE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Textures.PrefetchWorkers, err = getIntOrDefault("TEXTURE_PREFETCH_WORKERS", 4); err != nil {
		return nil, err
	}

	// Load the Redis configuration.
	cfg.Redis.Host = os.Getenv("REDIS_HOST")
	cfg.Redis.Port = getEnvOrDefault("REDIS_PORT", "6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.TTL, err = getDurationOrDefault("REDIS_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	// Load the bucket configuration.
	cfg.Bucket.Region = os.Getenv("BUCKET_REGION")
	cfg.Bucket.Endpoint = os.Getenv("BUCKET_ENDPOINT")
	cfg.Bucket.AccessKey = os.Getenv("BUCKET_ACCESS_KEY")
	cfg.Bucket.AccessSecret = os.Getenv("BUCKET_ACCESS_SECRET")
	cfg.Bucket.LogBucket = os.Getenv("BUCKET_LOG")

	if cfg.Revalidation.Workers, err = getIntOrDefault("REVALIDATE_WORKERS", 8); err != nil {
		return nil, err
	}
	if cfg.Revalidation.Hour, err = getIntOrDefault("REVALIDATE_HOUR", 4); err != nil {
		return nil, err
	}
	if cfg.Revalidation.Hour < 0 || cfg.Revalidation.Hour > 23 {
		return nil, fmt.Errorf("invalid REVALIDATE_HOUR: %d", cfg.Revalidation.Hour)
	}

	cfg.UI.BackgroundImage = os.Getenv("BACKGROUND_IMAGE")

	return cfg, nil
}

// RedisEnabled reports if a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// LogUploadEnabled reports if the logs should be sent to a bucket.
func (c *Config) LogUploadEnabled() bool {
	return c.Bucket.LogBucket != ""
}

// Return the env value if it's available, else returns the fallback.
func getEnvOrDefault(key string, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getIntOrDefault(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getFloatOrDefault(key string, fallback float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
