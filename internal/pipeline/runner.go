package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/commercedata/shopsync/internal/config"
	"github.com/commercedata/shopsync/internal/db"
	"github.com/commercedata/shopsync/internal/logging"
	"github.com/commercedata/shopsync/internal/sources"
	"github.com/commercedata/shopsync/internal/store"
)

// Runner executes a sync across tenants and sources. Tenants run
// strictly one after another; a failed source run is recorded and does
// not stop the remaining sources or tenants.
type Runner struct {
	cfg    *config.Config
	handle *sql.DB
	loader *store.Loader
	clock  Clock
}

func NewRunner(cfg *config.Config, handle *sql.DB, loader *store.Loader, clock Clock) *Runner {
	return &Runner{
		cfg:    cfg,
		handle: handle,
		loader: loader,
		clock:  clock,
	}
}

// Run syncs the given sources for the given tenants. It returns the
// joined errors of all failed runs, or nil when every run reached done.
func (r *Runner) Run(ctx context.Context, srcs []sources.Source, tenants []string) error {
	zone, err := time.LoadLocation(r.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", r.cfg.Timezone, err)
	}

	retry := RetryPolicy{
		MaxAttempts: r.cfg.Sync.RetryAttempts,
		Delay:       time.Duration(r.cfg.Sync.RetryDelay) * time.Second,
	}
	delay := time.Duration(r.cfg.Sync.PageDelay) * time.Second

	var failures []error
	for _, id := range tenants {
		tenant, err := r.cfg.Tenant(id)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if err := r.loader.CreateTables(ctx, id); err != nil {
			failures = append(failures, fmt.Errorf("create tables for %s: %w", id, err))
			continue
		}

		for _, src := range srcs {
			driver := NewDriver(src, r.loader, r.clock, retry, delay)
			req := sources.Request{
				Tenant:    tenant,
				StartDate: r.cfg.Sync.StartDate,
				EndDate:   r.cfg.Sync.EndDate,
				Zone:      zone,
			}

			logging.Info().
				Str("source", src.Name()).
				Str("tenant", id).
				Str("start_date", req.StartDate).
				Str("end_date", req.EndDate).
				Msg("sync started")

			res, err := driver.Run(ctx, req)
			if err != nil {
				logging.Error().
					Err(err).
					Str("source", src.Name()).
					Str("tenant", id).
					Int("pages", res.Pages).
					Msg("sync failed")
				failures = append(failures, err)
				if ctx.Err() != nil {
					return errors.Join(failures...)
				}
				continue
			}

			logging.Info().
				Str("source", src.Name()).
				Str("tenant", id).
				Int("pages", res.Pages).
				Int("rows", res.Rows).
				Msg("sync done")

			if err := db.SaveSyncMark(ctx, r.handle, id, src.Name(), r.clock.Now()); err != nil {
				failures = append(failures, err)
			}
		}
	}

	return errors.Join(failures...)
}
