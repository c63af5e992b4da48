package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string

	// Database
	DatabaseURL string

	// Rate limiter storage. When empty the limiter keeps counts in memory.
	RedisURL string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Relevance policy knobs. These are tuning constants, not correctness
	// switches; the defaults match the admin UI's display buckets.
	FuzzyFloor            float64 // minimum similarity for a fuzzy match
	FuzzyLimit            int     // default number of fuzzy matches returned
	MinSessionConfidence  float64 // floor for session-pattern suggestions
	MinSessionOccurrences int     // A->B must co-occur at least this often
	AutoCreateConfidence  float64 // default confidence floor for auto-create
	SessionGapMinutes     int     // max silence before a session is split
	DiscoveryWindowDays   int     // default trailing window for discovery
	MinSearchVolume       int     // queries below this volume are ignored

	// Seeding
	GlossaryFile string // optional YAML glossary, seeded at startup
	SeedStatic   bool   // insert the built-in static dictionary on boot
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/catalogsearch?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		FuzzyFloor:            getEnvFloat("FUZZY_FLOOR", 0.5),
		FuzzyLimit:            getEnvInt("FUZZY_LIMIT", 5),
		MinSessionConfidence:  getEnvFloat("MIN_SESSION_CONFIDENCE", 0.4),
		MinSessionOccurrences: getEnvInt("MIN_SESSION_OCCURRENCES", 3),
		AutoCreateConfidence:  getEnvFloat("AUTO_CREATE_CONFIDENCE", 0.7),
		SessionGapMinutes:     getEnvInt("SESSION_GAP_MINUTES", 30),
		DiscoveryWindowDays:   getEnvInt("DISCOVERY_WINDOW_DAYS", 30),
		MinSearchVolume:       getEnvInt("MIN_SEARCH_VOLUME", 2),

		GlossaryFile: getEnv("GLOSSARY_FILE", ""),
		SeedStatic:   getEnv("SEED_STATIC", "") != "",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
