package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything the lineup service reads from the environment.
type Config struct {
	ListenAddr string
	Env        string // dev | prod
	LogLevel   string

	MongoURI             string
	MongoDatabase        string
	PlayersCollection    string
	FormationsCollection string
	MatchesCollection    string

	RedisAddr     string // empty disables the player-list cache
	RedisPassword string
	CacheTTL      time.Duration

	UploadDir     string
	PublicBaseURL string // prefix for uploaded photo URLs
}

// Load reads the configuration from environment variables, applying
// defaults suitable for local development.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:           os.Getenv("LISTEN_ADDR"),
		Env:                  os.Getenv("APP_ENV"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
		MongoURI:             os.Getenv("MONGODB_URI"),
		MongoDatabase:        os.Getenv("MONGODB_DATABASE"),
		PlayersCollection:    os.Getenv("MONGODB_PLAYERS_COLLECTION"),
		FormationsCollection: os.Getenv("MONGODB_FORMATIONS_COLLECTION"),
		MatchesCollection:    os.Getenv("MONGODB_MATCHES_COLLECTION"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		UploadDir:            os.Getenv("UPLOAD_DIR"),
		PublicBaseURL:        os.Getenv("PUBLIC_BASE_URL"),
	}

	// Apply defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":3000"
	}
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "futbol"
	}
	if cfg.PlayersCollection == "" {
		cfg.PlayersCollection = "jugadores"
	}
	if cfg.FormationsCollection == "" {
		cfg.FormationsCollection = "formaciones"
	}
	if cfg.MatchesCollection == "" {
		cfg.MatchesCollection = "partidos"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:3000"
	}

	var err error
	cfg.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Helper function to parse duration from environment variable
func getDuration(envKey string, defaultVal time.Duration) (time.Duration, error) {
	valStr := os.Getenv(envKey)
	if valStr == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format for %s: %w", envKey, err)
	}
	return d, nil
}
