package ga

import (
	"context"

	"github.com/commercedata/shopsync/internal/sources"
	"github.com/commercedata/shopsync/internal/store"
)

// Source implements the GA4 channel sync. The report API returns the
// whole date range at once, so a run is a single page.
type Source struct{}

// New creates the GA source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "ga"
}

// Description returns a human-readable description.
func (s *Source) Description() string {
	return "GA4 channel/date/source session metrics"
}

// Tables returns the entity tables this source loads.
func (s *Source) Tables() []store.Table {
	return []store.Table{store.Channels}
}

// FetchPage runs the channel report over the sync window.
func (s *Source) FetchPage(ctx context.Context, req sources.Request) (*sources.Batch, error) {
	client := NewClient(req.Tenant.Analytics)

	raw, err := client.RunReport(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	rows, err := BuildChannels(raw)
	if err != nil {
		return nil, err
	}

	return &sources.Batch{
		RowSets: []store.RowSet{{Table: store.Channels, Rows: rows}},
		HasNext: false,
	}, nil
}

func init() {
	sources.Register(New())
}
