package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://project.supabase.co/")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("PORT", "")
	t.Setenv("HTTP_TIMEOUT", "")

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("default port: got %s", cfg.Port)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("default timeout: got %v", cfg.HTTPTimeout)
	}
	if cfg.SupabaseURL != "https://project.supabase.co" {
		t.Errorf("trailing slash not trimmed: %s", cfg.SupabaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateListsMissingVariables(t *testing.T) {
	cfg := &Config{Port: "8081", HTTPTimeout: 10 * time.Second}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing backend credentials")
	}
	for _, name := range []string{"SUPABASE_URL", "SUPABASE_ANON_KEY"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should name %s, got: %v", name, err)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"bad port", func(c *Config) { c.Port = "http" }},
		{"port out of range", func(c *Config) { c.Port = "70000" }},
		{"bad scheme", func(c *Config) { c.SupabaseURL = "ftp://example.com" }},
		{"timeout too small", func(c *Config) { c.HTTPTimeout = time.Millisecond }},
		{"timeout too large", func(c *Config) { c.HTTPTimeout = time.Hour }},
	}
	for _, tc := range cases {
		cfg := &Config{
			Port:        "8081",
			SupabaseURL: "https://project.supabase.co",
			SupabaseKey: "anon-key",
			HTTPTimeout: 10 * time.Second,
		}
		tc.mut(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
