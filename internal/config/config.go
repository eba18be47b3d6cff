package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"coursetrack/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port      string
	DBPath    string
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", constants.DefaultPort),
		DBPath:    getEnv("DB_PATH", defaultDBPath()),
		LogLevel:  getEnv("LOG_LEVEL", constants.DefaultLogLevel),
		LogFormat: getEnv("LOG_FORMAT", constants.DefaultLogFormat),
	}
}

// defaultDBPath places the database file in the per-user application-data
// directory, falling back to the working directory when it is unavailable.
func defaultDBPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return constants.DefaultDBFile
	}
	return filepath.Join(base, constants.AppDirName, constants.DefaultDBFile)
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	// Validate DBPath
	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	// Validate LogLevel
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	// Validate LogFormat
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
