package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP UI
	Port string

	// Backend (PostgREST over HTTPS)
	SupabaseURL string
	SupabaseKey string
	HTTPTimeout time.Duration

	// Remember-me cache; empty means the per-home default.
	CredentialsFile string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8081"),
		SupabaseURL:     strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseKey:     os.Getenv("SUPABASE_ANON_KEY"),
		HTTPTimeout:     getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		CredentialsFile: getEnv("CREDENTIALS_FILE", ""),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	var missing []string
	if c.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.SupabaseKey == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if len(missing) > 0 {
		errors = append(errors, fmt.Sprintf(
			"missing required environment variables: %s (set them in the environment or a .env file)",
			strings.Join(missing, ", ")))
	}

	if c.SupabaseURL != "" {
		if parsed, err := url.Parse(c.SupabaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid SUPABASE_URL '%s': %v", c.SupabaseURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid SUPABASE_URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
