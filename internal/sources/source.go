// Package sources defines the upstream source contract and the registry
// the pipeline drives.
package sources

import (
	"context"
	"time"

	"github.com/commercedata/shopsync/internal/config"
	"github.com/commercedata/shopsync/internal/store"
)

// Batch is one fetched and normalized page: the row sets to load, plus
// the continuation state the driver uses to decide whether to keep
// going.
type Batch struct {
	RowSets    []store.RowSet
	NextCursor string
	HasNext    bool
}

// Rows returns the total normalized row count across the batch.
func (b *Batch) Rows() int {
	total := 0
	for _, rs := range b.RowSets {
		total += len(rs.Rows)
	}
	return total
}

// Request carries everything a source needs to fetch one page.
type Request struct {
	// Tenant holds the account and its upstream credentials.
	Tenant config.TenantConfig

	// StartDate and EndDate bound the sync window (YYYY-MM-DD).
	StartDate string
	EndDate   string

	// Zone is the attribution timezone for send times.
	Zone *time.Location

	// Cursor is the continuation token from the previous page; empty
	// on the first page.
	Cursor string
}

// Source is one upstream platform. FetchPage pulls a single page for a
// tenant and normalizes it; the pure row builders behind it are
// unit-tested in each source package.
type Source interface {
	// Name returns the registry key (shopify, klaviyo, ga).
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Tables returns the entity tables this source loads.
	Tables() []store.Table

	// FetchPage fetches and normalizes one page.
	FetchPage(ctx context.Context, req Request) (*Batch, error)
}
