// Package fake is a synthetic source for seeding demo databases. It
// emits Shopify-shaped order pages plus pre-built campaign and channel
// rows, so seeded data exercises the same normalization and load path
// as a live sync.
package fake

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/commercedata/shopsync/internal/datagen"
	"github.com/commercedata/shopsync/internal/sources"
	"github.com/commercedata/shopsync/internal/sources/shopify"
	"github.com/commercedata/shopsync/internal/store"
)

const (
	pageSize  = 25
	pageCount = 3

	campaignCount = 12
	channelDays   = 30
)

// Source generates deterministic synthetic data per tenant. The same
// tenant always produces the same rows; the append-only tables are
// loaded first-write-wins here so a re-seed replays cleanly instead of
// tripping key conflicts.
type Source struct{}

// New creates the fake source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "fake"
}

// Description returns a human-readable description.
func (s *Source) Description() string {
	return "synthetic demo orders, campaigns and channel metrics"
}

// Tables returns the entity tables this source loads.
func (s *Source) Tables() []store.Table {
	return store.Tables
}

// FetchPage generates one synthetic page. Orders are paginated like the
// live source; campaigns and channels ride along on the first page.
func (s *Source) FetchPage(_ context.Context, req sources.Request) (*sources.Batch, error) {
	page := 0
	if req.Cursor != "" {
		n, err := strconv.Atoi(req.Cursor)
		if err != nil {
			return nil, err
		}
		page = n
	}

	seed := tenantSeed(req.Tenant.ID)
	gen, err := datagen.NewOrderGenerator(seed, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	// The generator walks its sequence from the start on every call, so
	// skip the pages already emitted to keep ids stable across pages.
	var raw []byte
	for p := 0; p <= page; p++ {
		raw, err = gen.Page(pageSize)
		if err != nil {
			return nil, err
		}
	}

	orders, err := shopify.BuildOrders(raw)
	if err != nil {
		return nil, err
	}
	customers := shopify.BuildCustomers(raw)
	lineItems, err := shopify.BuildLineItems(raw)
	if err != nil {
		return nil, err
	}

	batch := &sources.Batch{
		RowSets: []store.RowSet{
			{Table: tolerant(store.Orders), Rows: orders},
			{Table: store.Customers, Rows: customers},
			{Table: tolerant(store.LineItems), Rows: lineItems},
		},
	}

	if page == 0 {
		campaigns, err := datagen.CampaignRows(seed, req.StartDate, req.EndDate, campaignCount)
		if err != nil {
			return nil, err
		}
		channels, err := datagen.ChannelRows(seed, req.StartDate, channelDays)
		if err != nil {
			return nil, err
		}
		batch.RowSets = append(batch.RowSets,
			store.RowSet{Table: store.Campaigns, Rows: campaigns},
			store.RowSet{Table: store.Channels, Rows: channels},
		)
	}

	if page+1 < pageCount {
		batch.NextCursor = strconv.Itoa(page + 1)
		batch.HasNext = true
	}
	return batch, nil
}

// tolerant relaxes an insert-only table to first-write-wins. Seed pages
// replay identical rows on a re-run, so conflicts are expected and must
// not fail the batch.
func tolerant(t store.Table) store.Table {
	t.Policy = store.InsertOrIgnore
	return t
}

func tenantSeed(tenant string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(tenant))
	return h.Sum64()
}

func init() {
	sources.Register(New())
}
