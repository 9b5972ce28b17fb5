package config

import (
	"os"
	"strconv"

	"cdtire/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Upload   UploadConfig
	Protocol ProtocolConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	OpsPort string
	GinMode string
}

// UploadConfig holds workbook upload limits
type UploadConfig struct {
	MaxSizeMB int
}

// ProtocolConfig holds protocol generation settings
type ProtocolConfig struct {
	// RootDir is where protocol folders and batch files are written.
	RootDir string
	// SolverCPUs is passed through to the abaqus invocation in batch files.
	SolverCPUs int
	// MaxConcurrent bounds parallel folder generation.
	MaxConcurrent int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			OpsPort: getEnvOrDefault("OPS_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Upload: UploadConfig{
			MaxSizeMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 50),
		},
		Protocol: ProtocolConfig{
			RootDir:       getEnvOrDefault("PROTOCOL_ROOT", "./protocols"),
			SolverCPUs:    getEnvIntOrDefault("SOLVER_CPUS", 4),
			MaxConcurrent: getEnvIntOrDefault("PROTOCOL_MAX_CONCURRENT", 4),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks required configuration values
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if c.Upload.MaxSizeMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if c.Protocol.MaxConcurrent <= 0 {
		return errors.ConfigInvalid("PROTOCOL_MAX_CONCURRENT must be positive")
	}
	return nil
}

// getEnvOrDefault returns an environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns an integer environment variable value or a default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
