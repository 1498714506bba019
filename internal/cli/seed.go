package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commercedata/shopsync/internal/db"
	"github.com/commercedata/shopsync/internal/pipeline"
	"github.com/commercedata/shopsync/internal/sources"
	"github.com/commercedata/shopsync/internal/store"
)

var seedTenant string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load synthetic demo data",
	Long: `Populate tenant tables with deterministic synthetic orders, email
campaigns and channel metrics. No upstream credentials are needed, so
seed is the quickest way to try the ask and report commands.

Seeded rows are stable per tenant; re-running seed is a no-op.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedTenant, "tenant", "",
		"seed a single tenant (default: all configured tenants)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	tenants, err := resolveTenants(seedTenant)
	if err != nil {
		return err
	}

	src, err := sources.Get("fake")
	if err != nil {
		return err
	}

	ctx := context.Background()
	handle, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer handle.Close()

	// Seeding is local, so skip the courtesy page delay.
	cfg.Sync.PageDelay = 0

	loader := store.NewLoader(handle, cfg.TenantIDs())
	runner := pipeline.NewRunner(cfg, handle, loader, pipeline.RealClock())
	return runner.Run(ctx, []sources.Source{src}, tenants)
}
