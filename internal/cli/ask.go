package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/commercedata/shopsync/internal/assistant"
	"github.com/commercedata/shopsync/internal/db"
)

var (
	askTenant    string
	askDomain    string
	askSummarize bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a natural-language question about a tenant's data",
	Long: `Translate a question into a read-only SQLite query over the tenant's
tables, run it, and print the result. The domain selects which data the
question is answered from: shop (orders, customers, line items), email
(campaigns) or analytics (web traffic).

Example:
  shopsync ask --tenant acme "who were my top customers in 2024?"
  shopsync ask --tenant acme --domain email "what was my open rate last month?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askTenant, "tenant", "",
		"tenant to query (required)")
	askCmd.Flags().StringVar(&askDomain, "domain", "shop",
		"question domain (shop, email, analytics)")
	askCmd.Flags().BoolVar(&askSummarize, "summarize", false,
		"append a model-written summary of the result")
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateAsk(); err != nil {
		return err
	}
	if askTenant == "" {
		return fmt.Errorf("--tenant is required")
	}
	if _, err := cfg.Tenant(askTenant); err != nil {
		return err
	}

	var domain assistant.Domain
	switch askDomain {
	case "shop":
		domain = assistant.DomainShop
	case "email":
		domain = assistant.DomainEmail
	case "analytics":
		domain = assistant.DomainAnalytics
	default:
		return fmt.Errorf("unknown domain %q (shop, email, analytics)", askDomain)
	}

	ctx := context.Background()
	handle, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer handle.Close()

	a := assistant.New(cfg.OpenAI, handle, askTenant)
	question := strings.Join(args, " ")

	var answer string
	if askSummarize {
		answer, err = a.AskSummarized(ctx, domain, question)
	} else {
		answer, err = a.Ask(ctx, domain, question)
	}
	if err != nil {
		return err
	}

	cmd.Println(answer)
	return nil
}
