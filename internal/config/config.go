package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth0 tenant
	Auth0Domain   string
	Auth0Audience string

	// Auth0 Management API (client-credentials)
	Auth0ManagementClientID     string
	Auth0ManagementClientSecret string

	// Server
	Port        string
	CORSOrigins string

	// Rate limiting (requests per minute per IP)
	RateLimitAPI  int
	RateLimitAuth int
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "quimera_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),

		Auth0ManagementClientID:     getEnv("AUTH0_MANAGEMENT_CLIENT_ID", ""),
		Auth0ManagementClientSecret: getEnv("AUTH0_MANAGEMENT_CLIENT_SECRET", ""),

		Port:        getEnv("PORT", "3001"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RateLimitAPI:  parseInt(getEnv("RATE_LIMIT_API", "120"), 120),
		RateLimitAuth: parseInt(getEnv("RATE_LIMIT_AUTH", "20"), 20),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// IssuerURL is the expected iss claim of inbound tokens.
func (c *Config) IssuerURL() string {
	return "https://" + c.Auth0Domain + "/"
}

// JWKSURL is the tenant's published key set.
func (c *Config) JWKSURL() string {
	return "https://" + c.Auth0Domain + "/.well-known/jwks.json"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
