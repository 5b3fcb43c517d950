// Package config handles loading and validation of configuration values from
// environment variables, with support for required variables, default values,
// and collective error reporting: every problem found while loading is reported
// in a single error rather than failing on the first one.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        // Secret key for signing JWTs
	TokenDuration time.Duration // Validity window for issued tokens
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     string // Port for the HTTP server
	LogLevel string // zerolog level name (debug, info, warn, ...)
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB     *PoolConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

// getRequiredEnv reads a required environment variable, collecting an error
// when it is not set so all missing variables are reported together.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional integer variable. Parse failures are
// collected and the default is used.
func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads an optional duration variable ("15m", "24h", ...).
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the connection pool within sane bounds.
func clampPoolSize(size int, varName string, errs *[]string) int {
	if size < 5 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		return 5
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading and
// returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	// Database configuration
	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs), "DB_POOL_SIZE", &errs)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Auth configuration
	jwtSecret := getRequiredEnv("JWT_SECRET", &errs)
	tokenDuration := getOptionalEnvDuration("JWT_TOKEN_DURATION", 24*time.Hour, &errs)

	authConfig := &AuthConfig{
		JWTSecret:     jwtSecret,
		TokenDuration: tokenDuration,
	}

	serverConfig := &ServerConfig{
		Port:     getOptionalEnv("PORT", "8080"),
		LogLevel: getOptionalEnv("LOG_LEVEL", "info"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB:     dbConfig,
		Auth:   authConfig,
		Server: serverConfig,
	}, nil
}
