package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/commercedata/shopsync/internal/db"
	"github.com/commercedata/shopsync/internal/pipeline"
	"github.com/commercedata/shopsync/internal/sources"
	"github.com/commercedata/shopsync/internal/store"
)

var (
	syncTenant    string
	syncSources   []string
	syncStartDate string
	syncEndDate   string
	syncPageDelay int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync tenant data from the upstream platforms",
	Long: `Fetch orders, email-campaign metrics and web-analytics metrics for
each tenant and load them into the tenant's tables. Tenants sync one
after another; within a tenant, each source paginates to completion
before the next starts.

Example:
  shopsync sync --tenant acme --start-date 2024-01-01`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncTenant, "tenant", "",
		"sync a single tenant (default: all configured tenants)")
	syncCmd.Flags().StringSliceVar(&syncSources, "source", []string{"shopify", "klaviyo", "ga"},
		"sources to sync")
	syncCmd.Flags().StringVar(&syncStartDate, "start-date", "",
		"inclusive window start (YYYY-MM-DD)")
	syncCmd.Flags().StringVar(&syncEndDate, "end-date", "",
		"window end (YYYY-MM-DD)")
	syncCmd.Flags().IntVar(&syncPageDelay, "page-delay", -1,
		"seconds to wait between page fetches")
}

func runSync(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if syncStartDate != "" {
		cfg.Sync.StartDate = syncStartDate
	}
	if syncEndDate != "" {
		cfg.Sync.EndDate = syncEndDate
	}
	if syncPageDelay >= 0 {
		cfg.Sync.PageDelay = syncPageDelay
	}

	if err := cfg.ValidateSync(); err != nil {
		return err
	}
	tenants, err := resolveTenants(syncTenant)
	if err != nil {
		return err
	}

	srcs := make([]sources.Source, 0, len(syncSources))
	for _, name := range syncSources {
		src, err := sources.Get(name)
		if err != nil {
			return err
		}
		srcs = append(srcs, src)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handle, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer handle.Close()

	loader := store.NewLoader(handle, cfg.TenantIDs())
	runner := pipeline.NewRunner(cfg, handle, loader, pipeline.RealClock())
	return runner.Run(ctx, srcs, tenants)
}
