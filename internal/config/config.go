// Package config handles configuration loading for the auth service.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the auth service.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	SessionTTL     time.Duration
	AllowedOrigins []string
	RedactedFields []string

	Cookie CookieConfig

	Port        string
	Environment string
	LogLevel    string
}

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		DBHost:     getEnvRequired("DB_HOST"),
		DBPort:     getEnvRequired("DB_PORT"),
		DBUser:     getEnvRequired("DB_USER"),
		DBPassword: getEnvRequired("DB_PASSWORD"),
		DBName:     getEnvRequired("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisHost:     getEnvRequired("REDIS_HOST"),
		RedisPort:     getEnvRequired("REDIS_PORT"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SessionTTL:     parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		RedactedFields: splitList(getEnv("REDACTED_FIELDS", "name,email,phone,password,ssn")),

		Cookie: CookieConfig{
			Path:     getEnv("COOKIE_PATH", "/"),
			Domain:   getEnv("COOKIE_DOMAIN", ""),
			Secure:   getEnv("COOKIE_SECURE", "false") == "true",
			SameSite: parseSameSite(getEnv("COOKIE_SAMESITE", "lax")),
		},

		Port:        getEnv("PORT", "8084"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisAddr returns the host:port address of the redis server.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(value) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
