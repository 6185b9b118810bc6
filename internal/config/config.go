package config

import (
	"os"
	"time"
)

// Config holds all service configuration, sourced from the environment.
type Config struct {
	ServicePort      string
	ElasticsearchURL string

	// Legacy system API
	LegacyBaseURL string
	LegacyTimeout time.Duration

	// Window sent with every notes request. The legacy API requires a
	// range, so the default is a wide all-time window.
	NotesDateFrom string
	NotesDateTo   string

	// Scheduled import
	ImportInterval time.Duration

	// Couchbase
	CouchbaseURL      string
	CouchbaseUsername string
	CouchbasePassword string
	CouchbaseBucket   string
}

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() *Config {
	return &Config{
		ServicePort:      getEnvOrDefault("SERVICE_PORT", "8080"),
		ElasticsearchURL: os.Getenv("ELASTICSEARCH_URL"),

		LegacyBaseURL: getEnvOrDefault("LEGACY_BASE_URL", "http://legacy-system:8090/api"),
		LegacyTimeout: getDurationOrDefault("LEGACY_TIMEOUT", 30*time.Second),

		NotesDateFrom: getEnvOrDefault("NOTES_DATE_FROM", "2000-01-01"),
		NotesDateTo:   getEnvOrDefault("NOTES_DATE_TO", "2030-12-31"),

		ImportInterval: getDurationOrDefault("IMPORT_INTERVAL", 2*time.Hour),

		CouchbaseURL:      getEnvOrDefault("COUCHBASE_URL", "couchbase://notesync-db"),
		CouchbaseUsername: getEnvOrDefault("COUCHBASE_USERNAME", "notesync_user"),
		CouchbasePassword: getEnvOrDefault("COUCHBASE_PASSWORD", "password"),
		CouchbaseBucket:   getEnvOrDefault("COUCHBASE_BUCKET", "notesync"),
	}
}

// Helper function to get environment variable with default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
