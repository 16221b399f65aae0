// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible session store + cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Outbound mail
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFromAddr string
	MailFromName string
	// Routing mailboxes: quote-reason contacts and configurator quotes go
	// to QuotesAddr, everything else to InfoAddr.
	MailInfoAddr   string
	MailQuotesAddr string

	// reCAPTCHA v3
	RecaptchaSecret        string
	RecaptchaSkipInTesting bool

	// Quote price bounds (currency units)
	QuoteMinTotal float64
	QuoteMaxTotal float64

	// Logo upload storage: "local" or "s3"
	StorageDriver string
	UploadDir     string
	S3Endpoint    string
	S3Region      string
	S3AccessKey   string
	S3SecretKey   string
	S3Bucket      string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first if present. Returns an error if critical values are
// missing in production mode.
func Load() (*Config, error) {
	// Missing .env is fine — containers set real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "forgesite"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "forgesite"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		SMTPHost:       envOrDefault("SMTP_HOST", "localhost"),
		SMTPPort:       envIntOrDefault("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		MailFromAddr:   envOrDefault("MAIL_FROM_ADDRESS", "noreply@codeforge.systems"),
		MailFromName:   envOrDefault("MAIL_FROM_NAME", "CodeForge Systems"),
		MailInfoAddr:   envOrDefault("MAIL_INFO_ADDRESS", "info@codeforge.systems"),
		MailQuotesAddr: envOrDefault("MAIL_QUOTES_ADDRESS", "quotes@codeforge.systems"),

		RecaptchaSecret:        os.Getenv("RECAPTCHA_SECRET_KEY"),
		RecaptchaSkipInTesting: envBool("RECAPTCHA_SKIP_IN_TESTING"),

		QuoteMinTotal: envFloatOrDefault("QUOTE_MIN_TOTAL", 300),
		QuoteMaxTotal: envFloatOrDefault("QUOTE_MAX_TOTAL", 10000),

		StorageDriver: envOrDefault("STORAGE_DRIVER", "local"),
		UploadDir:     envOrDefault("UPLOAD_DIR", "./uploads"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3Region:      envOrDefault("S3_REGION", "eu-west-2"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
		S3Bucket:      envOrDefault("S3_BUCKET", "forgesite-uploads"),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.RecaptchaSkipInTesting {
			return nil, fmt.Errorf("RECAPTCHA_SKIP_IN_TESTING must not be enabled in production")
		}
	}

	if cfg.QuoteMinTotal > cfg.QuoteMaxTotal {
		return nil, fmt.Errorf("QUOTE_MIN_TOTAL (%v) exceeds QUOTE_MAX_TOTAL (%v)", cfg.QuoteMinTotal, cfg.QuoteMaxTotal)
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envIntOrDefault reads an integer environment variable, returning a
// fallback if unset or unparsable.
func envIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envFloatOrDefault reads a numeric environment variable, returning a
// fallback if unset or unparsable.
func envFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// envBool reads a boolean environment variable. Only "true" and "1" count
// as enabled.
func envBool(key string) bool {
	v := os.Getenv(key)
	return v == "true" || v == "1"
}
