package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commercedata/shopsync/internal/assistant"
	"github.com/commercedata/shopsync/internal/db"
)

var (
	reportTenant    string
	reportStartDate string
	reportEndDate   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a performance report for a tenant",
	Long: `Run the fixed store, web-analytics and email report queries over a
date window and have the model annotate each section with insights.

Example:
  shopsync report --tenant acme --start-date 2024-06-01 --end-date 2024-06-30`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportTenant, "tenant", "",
		"tenant to report on (required)")
	reportCmd.Flags().StringVar(&reportStartDate, "start-date", "",
		"inclusive window start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEndDate, "end-date", "",
		"inclusive window end (YYYY-MM-DD)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateAsk(); err != nil {
		return err
	}
	if reportTenant == "" {
		return fmt.Errorf("--tenant is required")
	}
	if _, err := cfg.Tenant(reportTenant); err != nil {
		return err
	}

	start := reportStartDate
	if start == "" {
		start = cfg.Sync.StartDate
	}
	end := reportEndDate
	if end == "" {
		end = cfg.Sync.EndDate
	}

	ctx := context.Background()
	handle, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer handle.Close()

	a := assistant.New(cfg.OpenAI, handle, reportTenant)
	out, err := a.Report(ctx, start, end)
	if err != nil {
		return err
	}

	cmd.Println(out)
	return nil
}
