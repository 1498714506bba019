package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/commercedata/shopsync/internal/db"
	"github.com/commercedata/shopsync/internal/sources"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last completed sync per tenant and source",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := context.Background()
		handle, err := db.Open(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer handle.Close()

		for _, tenant := range cfg.TenantIDs() {
			for _, src := range sources.All() {
				mark, err := db.GetSyncMark(ctx, handle, tenant, src.Name())
				if err != nil {
					return err
				}
				when := "never"
				if !mark.IsZero() {
					when = mark.Format(time.RFC3339)
				}
				cmd.Printf("  %-16s %-10s %s\n", tenant, src.Name(), when)
			}
		}
		return nil
	},
}
