package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/commercedata/shopsync/internal/logging"
	"github.com/commercedata/shopsync/internal/sources"
	"github.com/commercedata/shopsync/internal/store"
)

// State is the position of a driver in its pagination cycle.
type State int

const (
	StateFetching State = iota
	StateProcessing
	StateWaiting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateProcessing:
		return "processing"
	case StateWaiting:
		return "waiting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// BatchLoader persists one table's rows for a tenant. *store.Loader
// satisfies it.
type BatchLoader interface {
	Load(ctx context.Context, tenant string, rs store.RowSet) (int, error)
}

// Result summarizes a completed driver run.
type Result struct {
	State State
	Pages int
	Rows  int
}

// Driver walks one source's pages for one tenant: fetch, load, wait,
// repeat. A page with no next cursor or no rows ends the run. Any
// error that survives the retry policy fails the run; a failed run
// never fetches again.
type Driver struct {
	source sources.Source
	loader BatchLoader
	clock  Clock
	retry  RetryPolicy
	delay  time.Duration
}

func NewDriver(src sources.Source, loader BatchLoader, clock Clock, retry RetryPolicy, delay time.Duration) *Driver {
	return &Driver{
		source: src,
		loader: loader,
		clock:  clock,
		retry:  retry,
		delay:  delay,
	}
}

// Run executes the pagination loop until Done or Failed. The returned
// Result is valid in both cases.
func (d *Driver) Run(ctx context.Context, req sources.Request) (Result, error) {
	res := Result{State: StateFetching}
	cursor := req.Cursor

	for {
		switch res.State {
		case StateFetching:
			req.Cursor = cursor
			var batch *sources.Batch
			err := d.retry.Do(ctx, d.clock, func() error {
				var ferr error
				batch, ferr = d.source.FetchPage(ctx, req)
				return ferr
			})
			if err != nil {
				res.State = StateFailed
				return res, fmt.Errorf("%s: fetch page %d for %s: %w",
					d.source.Name(), res.Pages+1, req.Tenant.ID, err)
			}
			res.State = StateProcessing

			rows := batch.Rows()
			res.Pages++
			for _, rs := range batch.RowSets {
				set := rs
				err := d.retry.Do(ctx, d.clock, func() error {
					n, lerr := d.loader.Load(ctx, req.Tenant.ID, set)
					if lerr != nil {
						return lerr
					}
					res.Rows += n
					return nil
				})
				if err != nil {
					res.State = StateFailed
					return res, fmt.Errorf("%s: load page %d for %s: %w",
						d.source.Name(), res.Pages, req.Tenant.ID, err)
				}
			}

			logging.Debug().
				Str("source", d.source.Name()).
				Str("tenant", req.Tenant.ID).
				Int("page", res.Pages).
				Int("rows", rows).
				Bool("has_next", batch.HasNext).
				Msg("page loaded")

			if !batch.HasNext || rows == 0 {
				res.State = StateDone
				return res, nil
			}
			cursor = batch.NextCursor
			res.State = StateWaiting

		case StateWaiting:
			if err := d.clock.Sleep(ctx, d.delay); err != nil {
				res.State = StateFailed
				return res, fmt.Errorf("%s: interrupted for %s: %w",
					d.source.Name(), req.Tenant.ID, err)
			}
			res.State = StateFetching
		}
	}
}
