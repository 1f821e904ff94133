package config

import (
	"os"
	"regexp"
	"strconv"

	"liftdash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// DataConfig holds the survey source settings
type DataConfig struct {
	File string
}

// DatabaseConfig holds the optional PostgreSQL source; empty URL means file source
type DatabaseConfig struct {
	URL   string
	Table string
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

// DefaultDataFile is the cleaned survey export read when DATA_FILE is unset
const DefaultDataFile = "data_final_bersih.csv"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Data:     *loadDataConfig(),
		Database: *loadDatabaseConfig(),
		Logging:  LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// UsesDatabase reports whether responses come from PostgreSQL
func (c *Config) UsesDatabase() bool {
	return c.Database.URL != ""
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		APIPort: getEnvOrDefault("API_PORT", "8081"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File: getEnvOrDefault("DATA_FILE", DefaultDataFile),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:   getEnvOrDefault("DATABASE_URL", ""),
		Table: getEnvOrDefault("SURVEY_TABLE", "survey_responses"),
	}
}

func validateConfig(config *Config) error {
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	if _, err := strconv.Atoi(config.Server.APIPort); err != nil {
		return errors.ConfigInvalid("API_PORT must be numeric")
	}
	if config.UsesDatabase() {
		if !tableNamePattern.MatchString(config.Database.Table) {
			return errors.ConfigInvalid("SURVEY_TABLE must be a plain table name")
		}
	} else if config.Data.File == "" {
		return errors.ConfigInvalid("DATA_FILE is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
