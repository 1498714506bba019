// Package config handles configuration management for shopsync.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for shopsync.
type Config struct {
	// Database is the path to the SQLite database file.
	Database string `mapstructure:"database"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Timezone is the zone campaign send times are attributed in.
	Timezone string `mapstructure:"timezone"`

	// Tenants is the allow-list of tenant accounts. A tenant identifier
	// never reaches a table name unless it appears here.
	Tenants []TenantConfig `mapstructure:"tenants"`

	// Sync holds configuration for the sync subcommand.
	Sync SyncConfig `mapstructure:"sync"`

	// OpenAI holds configuration for the ask and report subcommands.
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

// TenantConfig holds one tenant account and its upstream credentials.
type TenantConfig struct {
	// ID is the short alphanumeric code prefixing the tenant's tables.
	ID string `mapstructure:"id"`

	Shopify   ShopifyConfig   `mapstructure:"shopify"`
	Klaviyo   KlaviyoConfig   `mapstructure:"klaviyo"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

// ShopifyConfig holds Shopify Admin API credentials for one tenant.
type ShopifyConfig struct {
	ShopURL    string `mapstructure:"shop_url"`
	APIToken   string `mapstructure:"api_token"`
	APIVersion string `mapstructure:"api_version"`
}

// KlaviyoConfig holds Klaviyo API credentials for one tenant.
type KlaviyoConfig struct {
	APIKey             string `mapstructure:"api_key"`
	ConversionMetricID string `mapstructure:"conversion_metric_id"`
}

// AnalyticsConfig holds GA4 Data API access for one tenant.
type AnalyticsConfig struct {
	PropertyID  string `mapstructure:"property_id"`
	AccessToken string `mapstructure:"access_token"`
}

// SyncConfig holds configuration for data synchronization.
type SyncConfig struct {
	// StartDate is the inclusive lower bound of the sync window (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`

	// EndDate is the upper bound of the sync window (YYYY-MM-DD).
	EndDate string `mapstructure:"end_date"`

	// PageDelay is the courtesy delay between page fetches, in seconds.
	// It is constant per source, not adaptive backoff.
	PageDelay int `mapstructure:"page_delay"`

	// RetryAttempts is the maximum number of attempts for a fetch or load.
	RetryAttempts int `mapstructure:"retry_attempts"`

	// RetryDelay is the delay between retry attempts, in seconds.
	RetryDelay int `mapstructure:"retry_delay"`
}

// OpenAIConfig holds OpenAI API settings for the query assistant.
type OpenAIConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Organization string `mapstructure:"organization"`
	Model        string `mapstructure:"model"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Database: "shop.db",
		LogLevel: "info",
		Timezone: "US/Central",
		Sync: SyncConfig{
			StartDate:     "2024-01-01",
			EndDate:       "2030-01-01",
			PageDelay:     30,
			RetryAttempts: 3,
			RetryDelay:    15,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./shopsync.yaml
// 3. ~/.config/shopsync/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("shopsync")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "shopsync"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}
	if len(c.Tenants) == 0 {
		return fmt.Errorf("at least one tenant is required")
	}
	for _, t := range c.Tenants {
		if t.ID == "" {
			return fmt.Errorf("tenant id must not be empty")
		}
	}
	return nil
}

// ValidateSync checks configuration required for the sync command.
func (c *Config) ValidateSync() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Sync.StartDate == "" || c.Sync.EndDate == "" {
		return fmt.Errorf("sync window start_date and end_date are required")
	}
	if c.Sync.PageDelay < 0 {
		return fmt.Errorf("page_delay must be non-negative")
	}
	if c.Sync.RetryAttempts < 1 {
		return fmt.Errorf("retry_attempts must be at least 1")
	}
	if c.Sync.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be non-negative")
	}
	return nil
}

// ValidateAsk checks configuration required for the ask and report commands.
func (c *Config) ValidateAsk() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai api_key is required")
	}
	if c.OpenAI.Model == "" {
		return fmt.Errorf("openai model is required")
	}
	return nil
}

// Tenant returns the tenant configuration for the given identifier.
func (c *Config) Tenant(id string) (TenantConfig, error) {
	for _, t := range c.Tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return TenantConfig{}, fmt.Errorf("unknown tenant: %s", id)
}

// TenantIDs returns the identifiers of all configured tenants.
func (c *Config) TenantIDs() []string {
	ids := make([]string, 0, len(c.Tenants))
	for _, t := range c.Tenants {
		ids = append(ids, t.ID)
	}
	return ids
}
