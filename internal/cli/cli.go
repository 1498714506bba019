// Package cli implements the command-line interface for shopsync.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/commercedata/shopsync/internal/config"
	"github.com/commercedata/shopsync/internal/logging"
	"github.com/commercedata/shopsync/internal/sources"
	"github.com/commercedata/shopsync/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	database string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "shopsync",
		Short: "Multi-tenant e-commerce data sync and query assistant",
		Long: `shopsync pulls orders, email-campaign performance and web-analytics
metrics from Shopify, Klaviyo and Google Analytics for multiple tenant
accounts, normalizes them, and loads them into per-tenant SQLite tables.

Loads are idempotent: re-running a sync over the same window never
duplicates or corrupts rows. The ask and report subcommands answer
natural-language questions over a tenant's synced data.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./shopsync.yaml)")
	rootCmd.PersistentFlags().StringVar(&database, "db", "",
		"path to the SQLite database file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(tenantsCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if database != "" {
		cfg.Database = database
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

// resolveTenants expands an empty tenant flag to all configured
// tenants.
func resolveTenants(tenant string) ([]string, error) {
	if tenant == "" {
		return cfg.TenantIDs(), nil
	}
	if _, err := cfg.Tenant(tenant); err != nil {
		return nil, err
	}
	return []string{tenant}, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List available sources",
	Long: `List all registered upstream sources and the tables each one
loads.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available sources:")
		cmd.Println()
		for _, src := range sources.All() {
			cmd.Printf("  %-10s %s\n", src.Name(), src.Description())
			for _, table := range src.Tables() {
				cmd.Printf("             -> <tenant>_%s\n", table.Entity)
			}
		}
	},
}

var tenantsCmd = &cobra.Command{
	Use:   "tenants",
	Short: "List configured tenants",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		for _, tenant := range cfg.Tenants {
			var upstreams []string
			if tenant.Shopify.ShopURL != "" {
				upstreams = append(upstreams, "shopify")
			}
			if tenant.Klaviyo.APIKey != "" {
				upstreams = append(upstreams, "klaviyo")
			}
			if tenant.Analytics.PropertyID != "" {
				upstreams = append(upstreams, "ga")
			}
			cmd.Printf("  %-16s %v\n", tenant.ID, upstreams)
		}
		return nil
	},
}
