package klaviyo

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/commercedata/shopsync/internal/sources"
	"github.com/commercedata/shopsync/internal/store"
)

// Source implements the Klaviyo campaign sync. Campaign metadata and
// performance statistics are two upstream queries; rows are matched in
// memory by campaign id and loaded once under the metrics-only upsert.
type Source struct{}

// New creates the Klaviyo source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "klaviyo"
}

// Description returns a human-readable description.
func (s *Source) Description() string {
	return "Klaviyo email campaigns and performance statistics"
}

// Tables returns the entity tables this source loads.
func (s *Source) Tables() []store.Table {
	return []store.Table{store.Campaigns}
}

// FetchPage fetches one page of campaigns, pulls their statistics, and
// joins the two into klaviyo_campaigns rows.
func (s *Source) FetchPage(ctx context.Context, req sources.Request) (*sources.Batch, error) {
	client := NewClient(req.Tenant.Klaviyo)

	raw, err := client.FetchCampaigns(ctx, req.StartDate, req.Cursor)
	if err != nil {
		return nil, err
	}

	campaigns, err := BuildCampaigns(raw, req.Zone)
	if err != nil {
		return nil, err
	}

	next := gjson.GetBytes(raw, "links.next")
	batch := &sources.Batch{
		NextCursor: next.String(),
		HasNext:    next.Exists() && next.Type != gjson.Null && next.String() != "",
	}

	if len(campaigns) == 0 {
		batch.RowSets = []store.RowSet{{Table: store.Campaigns}}
		return batch, nil
	}

	stats, err := client.FetchStats(ctx, CampaignIDs(campaigns), req.Tenant.Klaviyo.ConversionMetricID)
	if err != nil {
		return nil, err
	}

	batch.RowSets = []store.RowSet{{
		Table: store.Campaigns,
		Rows:  MatchStats(campaigns, BuildStats(stats)),
	}}
	return batch, nil
}

func init() {
	sources.Register(New())
}
