package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	Database   DatabaseConfig
	Scheduling SchedulingConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SchedulingConfig holds assignment engine policy knobs
type SchedulingConfig struct {
	// EnforceHours rejects candidates whose committed hours on the shift's
	// day would exceed their allowed hours. Off by default.
	EnforceHours bool
	// ReminderCron is the robfig/cron spec for the next-day shift reminder job
	ReminderCron string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "crewshift"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Scheduling: SchedulingConfig{
			EnforceHours: getEnvBool("SCHED_ENFORCE_HOURS", false),
			ReminderCron: getEnv("SCHED_REMINDER_CRON", "0 18 * * *"),
		},
	}

	AppConfig = config

	log.Infof("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// IsDev returns true when running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true when running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed CORS origins for production
func (c *Config) GetAllowedOrigins() string {
	return getEnv("ALLOWED_ORIGINS", "")
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool reads a boolean environment variable with a fallback default
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
