package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Deployment modes
const (
	ModeProd = "PROD"
	ModeDev  = "DEV"
	ModeTest = "TEST"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string
	Mode string

	// Database configuration
	DBType             string // mysql, postgres, sqlite, sqlserver
	DBHost             string
	DBPort             string
	DBInstance         string // Cloud SQL instance connection name, production only
	DBSocketDir        string
	DBDatabase         string
	DBUser             string
	DBPassword         string
	DBConnectionLimit  int
	DBConnectTimeout   time.Duration
	DBOperationTimeout time.Duration
	DBLogLevel         string

	// Session configuration
	AuthCallbackSecret  string
	SessionCookieSecure bool

	// Tables is derived from Mode once, at load time
	Tables Tables
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Mode:                loadMode(),
		DBType:              strings.ToLower(getEnv("DB_TYPE", "mysql")),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBInstance:          getEnv("DB_INSTANCE", ""),
		DBSocketDir:         getEnv("DB_SOCKET_DIR", "/cloudsql"),
		DBDatabase:          getEnv("DB_DATABASE", "tutor-buddy"),
		DBUser:              getEnv("DB_USER", ""),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:   getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBConnectTimeout:    getEnvAsDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		DBOperationTimeout:  getEnvAsDuration("DB_OPERATION_TIMEOUT", 10*time.Second),
		DBLogLevel:          strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		AuthCallbackSecret:  getEnv("AUTH_CALLBACK_SECRET", ""),
		SessionCookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", true),
	}

	switch cfg.Mode {
	case ModeProd, ModeDev, ModeTest:
	default:
		return nil, fmt.Errorf("MODE must be one of %s, %s, %s: got %q", ModeProd, ModeDev, ModeTest, cfg.Mode)
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.UsesSocket() && cfg.DBInstance == "" {
		return nil, fmt.Errorf("DB_INSTANCE is required in %s mode", ModeProd)
	}
	if cfg.AuthCallbackSecret == "" {
		return nil, fmt.Errorf("AUTH_CALLBACK_SECRET is required")
	}

	tables, err := TablesForMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	cfg.Tables = tables

	return cfg, nil
}

// UsesSocket reports whether the database is reached over the Cloud SQL unix socket
// instead of a host connection.
func (c *Config) UsesSocket() bool {
	return c.Mode == ModeProd && (c.DBType == "mysql" || c.DBType == "mariadb")
}

// SocketPath returns the unix socket path for the Cloud SQL instance
func (c *Config) SocketPath() string {
	return strings.TrimSuffix(c.DBSocketDir, "/") + "/" + c.DBInstance
}

// loadMode reads MODE, falling back to the lower-case spelling older deployments used
func loadMode() string {
	mode := os.Getenv("MODE")
	if mode == "" {
		mode = os.Getenv("mode")
	}
	if mode == "" {
		mode = ModeProd
	}
	return strings.ToUpper(strings.TrimSpace(mode))
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go duration strings ("10s") or a plain number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
