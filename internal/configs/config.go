package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type DBconfig struct {
	URL string
}

type RabbitMQConfig struct {
	// Enabled switches run-report publishing on; without a broker the app
	// still runs fully.
	Enabled    bool
	URL        string
	RoutingKey string
}

type RESTconfig struct {
	PORT string
}

type ScraperConfig struct {
	// SearchTerms are the default terms for scheduled runs and for trigger
	// requests that carry none.
	SearchTerms []string
	// RemotiveCategory narrows the Remotive source; empty means all
	// categories.
	RemotiveCategory string
	JobicyGeo        string
	JobicyIndustry   string
	JobicyCount      int
	IntervalHours    int
	// BackgroundEnabled starts the cron scheduler; the manual trigger works
	// either way.
	BackgroundEnabled bool
}

type FluentBitConfig struct {
	Enabled   bool
	Host      string
	Port      int
	TagPrefix string
	Level     string
}

type StdoutLoggerConfig struct {
	Level string
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	Database     DBconfig
	RabbitMQ     RabbitMQConfig
	Rest         RESTconfig
	Scraper      ScraperConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLoggerConfig
}

// LoadConfig reads the configuration from environment variables, optionally
// seeded from a .env file. A missing .env file is not an error: in
// containers the environment is injected directly.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	cfg.RabbitMQ.Enabled = cfg.RabbitMQ.URL != ""
	cfg.RabbitMQ.RoutingKey = getEnvAsString("RABBITMQ_RUN_REPORTS_KEY", "job_feed.run_reports")

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")

	cfg.Scraper.SearchTerms = splitAndTrim(getEnvAsString("SEARCH_TERMS", ""))
	cfg.Scraper.RemotiveCategory = getEnvAsString("REMOTIVE_CATEGORY", "data")
	cfg.Scraper.JobicyGeo = getEnvAsString("JOBICY_GEO", "")
	cfg.Scraper.JobicyIndustry = getEnvAsString("JOBICY_INDUSTRY", "")
	cfg.Scraper.JobicyCount = getEnvAsInt("JOBICY_COUNT", 50)
	cfg.Scraper.IntervalHours = getEnvAsInt("SCRAPE_INTERVAL_HOURS", 12)
	cfg.Scraper.BackgroundEnabled = getEnvAsBool("ENABLE_BG_SCRAPE", true)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.TagPrefix = getEnvAsString("FLUENTBIT_TAG_PREFIX", "job-feed")
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnvAsString reads an environment variable or returns the default.
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as int or returns the default,
// logging when the value exists but cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool reads an environment variable as bool or returns the default.
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// splitAndTrim turns "python, sql,go" into ["python", "sql", "go"].
func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
