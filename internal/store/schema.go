// Package store implements the tenant-namespaced SQLite storage layer:
// table definitions, tenant validation, and the batch loader with its
// per-table conflict policy.
package store

import "fmt"

// Policy declares what happens when a batch row collides with an
// existing primary key.
type Policy int

const (
	// InsertOnly rejects conflicts; re-loading an existing row is a
	// batch failure.
	InsertOnly Policy = iota

	// InsertOrIgnore keeps the first write; conflicting rows are
	// silently dropped.
	InsertOrIgnore

	// UpdateMetrics refreshes only the table's metric columns on
	// conflict; all other columns stay as first written.
	UpdateMetrics
)

// Table describes one entity table. Columns are ordered to match the
// rows the builders produce; Key is always the first column.
type Table struct {
	Entity    string
	Key       string
	Columns   []string
	Metrics   []string
	Policy    Policy
	createSQL string
}

// Name returns the tenant-namespaced table name. The tenant must have
// been validated before this is interpolated into SQL.
func (t Table) Name(tenant string) string {
	return fmt.Sprintf("%s_%s", tenant, t.Entity)
}

// Orders holds one row per order, insert-only. order_cost is derived
// from line-item unit costs, not platform-supplied.
var Orders = Table{
	Entity: "orders",
	Key:    "order_id",
	Columns: []string{
		"order_id", "order_date", "order_name", "order_total", "order_cost",
		"order_tags", "order_discounts", "order_shipping",
		"sales_channel_source", "customer_id", "customer_name",
	},
	Policy: InsertOnly,
	createSQL: `
        CREATE TABLE IF NOT EXISTS %s (
            order_id TEXT PRIMARY KEY,
            order_date TEXT,
            order_name TEXT,
            order_total REAL,
            order_cost REAL,
            order_tags TEXT,
            order_discounts REAL,
            order_shipping REAL,
            sales_channel_source TEXT,
            customer_id TEXT,
            customer_name TEXT
        )`,
}

// Customers holds one row per customer, first write wins. Profile
// fields are not refreshed on re-fetch.
var Customers = Table{
	Entity: "customers",
	Key:    "customer_id",
	Columns: []string{
		"customer_id", "customer_name", "customer_email", "customer_city",
		"customer_state_code", "customer_country_code", "customer_state_name",
		"customer_country_name", "customer_tags",
	},
	Policy: InsertOrIgnore,
	createSQL: `
        CREATE TABLE IF NOT EXISTS %s (
            customer_id TEXT PRIMARY KEY,
            customer_name TEXT,
            customer_email TEXT,
            customer_city TEXT,
            customer_state_code TEXT,
            customer_country_code TEXT,
            customer_state_name TEXT,
            customer_country_name TEXT,
            customer_tags TEXT
        )`,
}

// LineItems holds one row per order line item, insert-only.
var LineItems = Table{
	Entity: "line_items",
	Key:    "line_item_id",
	Columns: []string{
		"line_item_id", "order_id", "order_name", "customer_id", "product_sku",
		"product_title", "product_vendor", "ordered_quantity", "product_price",
		"product_cost", "product_discount", "product_id", "product_tags",
	},
	Policy: InsertOnly,
	createSQL: `
        CREATE TABLE IF NOT EXISTS %s (
            line_item_id TEXT PRIMARY KEY,
            order_id TEXT,
            order_name TEXT,
            customer_id TEXT,
            product_sku TEXT,
            product_title TEXT,
            product_vendor TEXT,
            ordered_quantity INTEGER,
            product_price REAL,
            product_cost REAL,
            product_discount REAL,
            product_id TEXT,
            product_tags TEXT
        )`,
}

// Campaigns holds one row per email campaign. Name, subject, preview
// and sent time are immutable after first insert; performance counters
// refresh on re-fetch.
var Campaigns = Table{
	Entity: "klaviyo_campaigns",
	Key:    "campaign_id",
	Columns: []string{
		"campaign_id", "campaign_name", "subject_line", "preview_text",
		"sent_time", "delivered_emails", "opens", "clicks", "conversions",
		"unsubscribes", "bounced", "spam_complaints",
	},
	Metrics: []string{
		"opens", "clicks", "conversions", "unsubscribes", "bounced",
		"spam_complaints",
	},
	Policy: UpdateMetrics,
	createSQL: `
        CREATE TABLE IF NOT EXISTS %s (
            campaign_id TEXT PRIMARY KEY,
            campaign_name TEXT,
            subject_line TEXT,
            preview_text TEXT,
            sent_time TEXT,
            delivered_emails INTEGER,
            opens INTEGER,
            clicks INTEGER,
            conversions INTEGER,
            unsubscribes INTEGER,
            bounced INTEGER,
            spam_complaints INTEGER
        )`,
}

// Channels holds one row per (date, channel, source) triple. Metric
// counters refresh on re-fetch; the identity columns do not.
var Channels = Table{
	Entity: "google_analytics",
	Key:    "channel_id",
	Columns: []string{
		"channel_id", "channel_date", "channel_name", "channel_source",
		"channel_sessions", "channel_carts", "channel_checkouts",
		"channel_transactions", "channel_revenue",
	},
	Metrics: []string{
		"channel_sessions", "channel_carts", "channel_checkouts",
		"channel_transactions", "channel_revenue",
	},
	Policy: UpdateMetrics,
	createSQL: `
        CREATE TABLE IF NOT EXISTS %s (
            channel_id TEXT PRIMARY KEY,
            channel_date TEXT,
            channel_name TEXT,
            channel_source TEXT,
            channel_sessions INTEGER,
            channel_carts INTEGER,
            channel_checkouts INTEGER,
            channel_transactions REAL,
            channel_revenue REAL
        )`,
}

// Tables lists every entity table in creation order.
var Tables = []Table{Orders, Customers, LineItems, Campaigns, Channels}
