package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Vendor credentials
	ApifyAPIToken string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Pipeline tuning
	EnrichTopK        int // posts sent to the AI for enrichment, highest base score first
	EnrichConcurrency int // worker pool size for enrichment calls
	OutputSize        int // posts returned per job
	LimitPerSource    int // max raw results per platform/category combo
	JobTTLMinutes     int

	// Enrichment can be switched off entirely (rule-based scores only)
	EnableEnrichment bool

	// Scheduled discovery run: "", "daily" or "weekly"
	ScrapeSchedule    string
	DefaultCategories []string
	DefaultSources    []string
	DefaultDaysBack   int

	// Notification configuration (used after scheduled runs)
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		ApifyAPIToken: getEnv("APIFY_API_TOKEN", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),

		EnrichTopK:        getIntEnv("ENRICH_TOP_K", 30),
		EnrichConcurrency: getIntEnv("ENRICH_CONCURRENCY", 5),
		OutputSize:        getIntEnv("OUTPUT_SIZE", 20),
		LimitPerSource:    getIntEnv("LIMIT_PER_SOURCE", 20),
		JobTTLMinutes:     getIntEnv("JOB_TTL_MINUTES", 60),

		EnableEnrichment: getBoolEnv("ENABLE_ENRICHMENT", true),

		ScrapeSchedule:    getEnv("SCRAPE_SCHEDULE", ""),
		DefaultCategories: getSliceEnv("DEFAULT_CATEGORIES", []string{"Funny", "Animals"}),
		DefaultSources:    getSliceEnv("DEFAULT_SOURCES", []string{"TikTok", "Instagram", "Facebook", "Twitter", "RSS"}),
		DefaultDaysBack:   getIntEnv("DEFAULT_DAYS_BACK", 7),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ApifyAPIToken == "" {
		return fmt.Errorf("APIFY_API_TOKEN is required")
	}

	if c.EnableEnrichment && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when ENABLE_ENRICHMENT is true")
	}

	if c.ScrapeSchedule != "" && c.ScrapeSchedule != "daily" && c.ScrapeSchedule != "weekly" {
		return fmt.Errorf("SCRAPE_SCHEDULE must be empty, 'daily' or 'weekly'")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	if c.EnrichTopK < 0 || c.OutputSize <= 0 || c.EnrichConcurrency <= 0 {
		return fmt.Errorf("ENRICH_TOP_K, OUTPUT_SIZE and ENRICH_CONCURRENCY must be positive")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
