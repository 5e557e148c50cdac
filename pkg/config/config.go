package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverSupabase = "supabase"
	StoreDriverPostgres = "postgres"
)

// Config holds all application configuration values
type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// json or console
	LogFormat string

	ResendAPIKey       string
	FromEmail          string
	AlertEmail         string
	CORSAllowedOrigins []string

	StoreDriver            string
	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseTable          string
	DatabaseURL            string

	// Ceiling applied to every outbound call
	OutboundTimeout time.Duration
}

// LoadConfig reads configuration from environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("WAITLIST_FROM_EMAIL", "TapRight <info@tapright.app>")
	v.SetDefault("STORE_DRIVER", StoreDriverSupabase)
	v.SetDefault("SUPABASE_WAITLIST_TABLE", "waitlist_signups")
	v.SetDefault("OUTBOUND_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	cfg := &Config{
		Port:                   v.GetString("PORT"),
		GinMode:                v.GetString("GIN_MODE"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LogFormat:              v.GetString("LOG_FORMAT"),
		ResendAPIKey:           v.GetString("RESEND_API_KEY"),
		FromEmail:              v.GetString("WAITLIST_FROM_EMAIL"),
		AlertEmail:             v.GetString("WAITLIST_ALERT_EMAIL"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		StoreDriver:            strings.ToLower(v.GetString("STORE_DRIVER")),
		SupabaseURL:            v.GetString("SUPABASE_URL"),
		SupabaseServiceRoleKey: v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseTable:          v.GetString("SUPABASE_WAITLIST_TABLE"),
		DatabaseURL:            v.GetString("DATABASE_URL"),
		OutboundTimeout:        v.GetDuration("OUTBOUND_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverSupabase, StoreDriverPostgres:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.OutboundTimeout <= 0 {
		return fmt.Errorf("OUTBOUND_TIMEOUT must be positive")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("WAITLIST_FROM_EMAIL is required")
	}
	return nil
}

// EmailConfigured reports whether the confirmation email provider has a credential
func (c *Config) EmailConfigured() bool {
	return c.ResendAPIKey != ""
}

// AlertConfigured reports whether internal signup alerts can be sent
func (c *Config) AlertConfigured() bool {
	return c.EmailConfigured() && c.AlertEmail != ""
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
