package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Database != "shop.db" {
		t.Errorf("Expected Database 'shop.db', got '%s'", cfg.Database)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.Timezone != "US/Central" {
		t.Errorf("Expected Timezone 'US/Central', got '%s'", cfg.Timezone)
	}

	if cfg.Sync.StartDate != "2024-01-01" {
		t.Errorf("Expected Sync.StartDate '2024-01-01', got '%s'", cfg.Sync.StartDate)
	}
	if cfg.Sync.PageDelay != 30 {
		t.Errorf("Expected Sync.PageDelay 30, got %d", cfg.Sync.PageDelay)
	}
	if cfg.Sync.RetryAttempts != 3 {
		t.Errorf("Expected Sync.RetryAttempts 3, got %d", cfg.Sync.RetryAttempts)
	}
	if cfg.Sync.RetryDelay != 15 {
		t.Errorf("Expected Sync.RetryDelay 15, got %d", cfg.Sync.RetryDelay)
	}

	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Expected OpenAI.Model 'gpt-4o-mini', got '%s'", cfg.OpenAI.Model)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		wantError bool
	}{
		{
			name: "valid config",
			cfg: &Config{
				Database: "shop.db",
				Tenants:  []TenantConfig{{ID: "d1"}},
			},
			wantError: false,
		},
		{
			name: "missing database",
			cfg: &Config{
				Tenants: []TenantConfig{{ID: "d1"}},
			},
			wantError: true,
		},
		{
			name: "no tenants",
			cfg: &Config{
				Database: "shop.db",
			},
			wantError: true,
		},
		{
			name: "empty tenant id",
			cfg: &Config{
				Database: "shop.db",
				Tenants:  []TenantConfig{{ID: ""}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestConfigValidateSync(t *testing.T) {
	base := func() *Config {
		cfg := DefaultConfig()
		cfg.Tenants = []TenantConfig{{ID: "d1"}}
		return cfg
	}

	cfg := base()
	if err := cfg.ValidateSync(); err != nil {
		t.Errorf("Expected valid sync config, got %v", err)
	}

	cfg = base()
	cfg.Sync.StartDate = ""
	if err := cfg.ValidateSync(); err == nil {
		t.Error("Expected error for missing start_date")
	}

	cfg = base()
	cfg.Sync.RetryAttempts = 0
	if err := cfg.ValidateSync(); err == nil {
		t.Error("Expected error for zero retry_attempts")
	}

	cfg = base()
	cfg.Sync.PageDelay = -1
	if err := cfg.ValidateSync(); err == nil {
		t.Error("Expected error for negative page_delay")
	}
}

func TestConfigValidateAsk(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tenants = []TenantConfig{{ID: "d1"}}

	if err := cfg.ValidateAsk(); err == nil {
		t.Error("Expected error for missing openai api_key")
	}

	cfg.OpenAI.APIKey = "sk-test"
	if err := cfg.ValidateAsk(); err != nil {
		t.Errorf("Expected valid ask config, got %v", err)
	}
}

func TestTenantLookup(t *testing.T) {
	cfg := &Config{
		Database: "shop.db",
		Tenants: []TenantConfig{
			{ID: "d1", Shopify: ShopifyConfig{ShopURL: "d1.myshopify.com"}},
			{ID: "d2"},
		},
	}

	tenant, err := cfg.Tenant("d1")
	if err != nil {
		t.Fatalf("Tenant('d1') returned error: %v", err)
	}
	if tenant.Shopify.ShopURL != "d1.myshopify.com" {
		t.Errorf("Unexpected shop URL: %s", tenant.Shopify.ShopURL)
	}

	if _, err := cfg.Tenant("d3"); err == nil {
		t.Error("Expected error for unknown tenant")
	}

	ids := cfg.TenantIDs()
	if len(ids) != 2 || ids[0] != "d1" || ids[1] != "d2" {
		t.Errorf("Unexpected tenant ids: %v", ids)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shopsync.yaml")

	content := []byte(`
database: /tmp/test-shop.db
log_level: debug
tenants:
  - id: d1
    shopify:
      shop_url: d1.myshopify.com
      api_token: token1
sync:
  page_delay: 5
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Database != "/tmp/test-shop.db" {
		t.Errorf("Expected database override, got '%s'", cfg.Database)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log_level 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.Sync.PageDelay != 5 {
		t.Errorf("Expected page_delay 5, got %d", cfg.Sync.PageDelay)
	}
	// Unset values keep defaults
	if cfg.Sync.RetryAttempts != 3 {
		t.Errorf("Expected default retry_attempts 3, got %d", cfg.Sync.RetryAttempts)
	}
	if len(cfg.Tenants) != 1 || cfg.Tenants[0].ID != "d1" {
		t.Fatalf("Unexpected tenants: %+v", cfg.Tenants)
	}
	if cfg.Tenants[0].Shopify.APIToken != "token1" {
		t.Errorf("Expected tenant shopify token, got '%s'", cfg.Tenants[0].Shopify.APIToken)
	}
}
