package shopify

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/commercedata/shopsync/internal/sources"
	"github.com/commercedata/shopsync/internal/store"
)

// Source implements the Shopify orders sync.
type Source struct{}

// New creates the Shopify source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "shopify"
}

// Description returns a human-readable description.
func (s *Source) Description() string {
	return "Shopify orders, customers and line items (Admin GraphQL API)"
}

// Tables returns the entity tables this source loads.
func (s *Source) Tables() []store.Table {
	return []store.Table{store.Orders, store.Customers, store.LineItems}
}

// FetchPage fetches one page of order edges and normalizes it into
// orders, customers and line-item row sets.
func (s *Source) FetchPage(ctx context.Context, req sources.Request) (*sources.Batch, error) {
	client := NewClient(req.Tenant.Shopify)

	raw, err := client.Execute(ctx, buildQuery(req.StartDate, req.EndDate, req.Cursor))
	if err != nil {
		return nil, err
	}

	edges := gjson.GetBytes(raw, "data.orders.edges")
	if !edges.Exists() {
		if apiErrs := gjson.GetBytes(raw, "errors"); apiErrs.Exists() {
			return nil, fmt.Errorf("shopify query failed: %s", apiErrs.Raw)
		}
		return nil, fmt.Errorf("shopify response missing orders payload")
	}

	page := []byte(edges.Raw)

	orders, err := BuildOrders(page)
	if err != nil {
		return nil, err
	}
	lineItems, err := BuildLineItems(page)
	if err != nil {
		return nil, err
	}

	pageInfo := gjson.GetBytes(raw, "data.orders.pageInfo")

	return &sources.Batch{
		RowSets: []store.RowSet{
			{Table: store.Orders, Rows: orders},
			{Table: store.Customers, Rows: BuildCustomers(page)},
			{Table: store.LineItems, Rows: lineItems},
		},
		NextCursor: pageInfo.Get("endCursor").String(),
		HasNext:    pageInfo.Get("hasNextPage").Bool(),
	}, nil
}

func init() {
	sources.Register(New())
}
