package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

var testTenants = []string{"d1", "d2"}

func testLoader(t *testing.T) (*Loader, *sql.DB) {
	t.Helper()

	handle, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	// One connection, or each statement may see a different :memory: db.
	handle.SetMaxOpenConns(1)
	t.Cleanup(func() { handle.Close() })

	loader := NewLoader(handle, testTenants)
	if err := loader.CreateTables(context.Background(), "d1"); err != nil {
		t.Fatalf("CreateTables failed: %v", err)
	}
	return loader, handle
}

func countRows(t *testing.T, handle *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := handle.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Count on %s failed: %v", table, err)
	}
	return n
}

func orderRow(id string) []any {
	return []any{id, "2024-06-01", "#1001", 100.0, 40.0, "summer sale",
		5.0, 10.0, "web", "777", "Jo Smith"}
}

func TestLoadOrdersInsertOnly(t *testing.T) {
	loader, handle := testLoader(t)
	ctx := context.Background()

	n, err := loader.Load(ctx, "d1", RowSet{Table: Orders, Rows: [][]any{orderRow("1"), orderRow("2")}})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 rows loaded, got %d", n)
	}

	// Re-loading the same page conflicts and must roll back atomically.
	_, err = loader.Load(ctx, "d1", RowSet{Table: Orders, Rows: [][]any{orderRow("2"), orderRow("3")}})
	if err == nil {
		t.Fatal("Expected conflict error for insert-only table")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected LoadError, got %T", err)
	}
	if loadErr.Table != "d1_orders" {
		t.Errorf("Expected table 'd1_orders' in error, got %q", loadErr.Table)
	}
	if loadErr.Rows != 2 {
		t.Errorf("Expected 2 attempted rows in error, got %d", loadErr.Rows)
	}
	if !IsConstraint(err) {
		t.Error("Duplicate key error not classified as a constraint violation")
	}

	// Row "3" must not have been committed.
	if got := countRows(t, handle, "d1_orders"); got != 2 {
		t.Errorf("Expected 2 rows after failed batch, got %d", got)
	}
}

func TestLoadCustomersFirstWriteWins(t *testing.T) {
	loader, handle := testLoader(t)
	ctx := context.Background()

	first := []any{"777", "Jo Smith", "jo@example.com", "Austin",
		"TX", "US", "Texas", "United States", "vip"}
	updated := []any{"777", "Joanna Smith", "joanna@example.com", "Dallas",
		"TX", "US", "Texas", "United States", ""}

	if _, err := loader.Load(ctx, "d1", RowSet{Table: Customers, Rows: [][]any{first}}); err != nil {
		t.Fatalf("First load failed: %v", err)
	}
	if _, err := loader.Load(ctx, "d1", RowSet{Table: Customers, Rows: [][]any{updated}}); err != nil {
		t.Fatalf("Second load failed: %v", err)
	}

	if got := countRows(t, handle, "d1_customers"); got != 1 {
		t.Fatalf("Expected 1 customer row, got %d", got)
	}

	var name string
	if err := handle.QueryRow("SELECT customer_name FROM d1_customers WHERE customer_id = '777'").Scan(&name); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if name != "Jo Smith" {
		t.Errorf("Expected first write to win, got %q", name)
	}
}

func TestLoadCampaignsRefreshesMetricsOnly(t *testing.T) {
	loader, handle := testLoader(t)
	ctx := context.Background()

	first := []any{"C1", "Spring Promo", "Save 20%", "This week only",
		"2024-03-01", 1000, 300, 50, 10, 2, 5, 1}
	refetch := []any{"C1", "RENAMED", "changed", "changed",
		"2024-04-01", 999, 450, 80, 15, 3, 6, 2}

	if _, err := loader.Load(ctx, "d1", RowSet{Table: Campaigns, Rows: [][]any{first}}); err != nil {
		t.Fatalf("First load failed: %v", err)
	}
	if _, err := loader.Load(ctx, "d1", RowSet{Table: Campaigns, Rows: [][]any{refetch}}); err != nil {
		t.Fatalf("Refetch load failed: %v", err)
	}

	var name, sent string
	var delivered, opens int
	err := handle.QueryRow(`
        SELECT campaign_name, sent_time, delivered_emails, opens
        FROM d1_klaviyo_campaigns WHERE campaign_id = 'C1'
    `).Scan(&name, &sent, &delivered, &opens)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if name != "Spring Promo" || sent != "2024-03-01" {
		t.Errorf("Metadata must be immutable, got name=%q sent=%q", name, sent)
	}
	if delivered != 1000 {
		t.Errorf("delivered_emails is not a refreshed metric, got %d", delivered)
	}
	if opens != 450 {
		t.Errorf("Expected opens refreshed to 450, got %d", opens)
	}
}

func TestLoadChannelsRefreshesMetrics(t *testing.T) {
	loader, handle := testLoader(t)
	ctx := context.Background()

	first := []any{"2024-06-01_Paid Social_fb_ads", "2024-06-01", "Paid Social",
		"facebook", 100, 20, 10, 5.0, 500.0}
	refetch := []any{"2024-06-01_Paid Social_fb_ads", "2024-06-01", "Paid Social",
		"facebook", 140, 25, 12, 7.0, 700.0}

	if _, err := loader.Load(ctx, "d1", RowSet{Table: Channels, Rows: [][]any{first}}); err != nil {
		t.Fatalf("First load failed: %v", err)
	}
	if _, err := loader.Load(ctx, "d1", RowSet{Table: Channels, Rows: [][]any{refetch}}); err != nil {
		t.Fatalf("Refetch load failed: %v", err)
	}

	if got := countRows(t, handle, "d1_google_analytics"); got != 1 {
		t.Fatalf("Expected 1 channel row, got %d", got)
	}

	var sessions int
	var revenue float64
	err := handle.QueryRow(`
        SELECT channel_sessions, channel_revenue
        FROM d1_google_analytics WHERE channel_id = '2024-06-01_Paid Social_fb_ads'
    `).Scan(&sessions, &revenue)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if sessions != 140 || revenue != 700.0 {
		t.Errorf("Expected refreshed metrics (140, 700.0), got (%d, %v)", sessions, revenue)
	}
}

func TestLoadEmptyBatch(t *testing.T) {
	loader, _ := testLoader(t)

	n, err := loader.Load(context.Background(), "d1", RowSet{Table: Orders})
	if err != nil {
		t.Fatalf("Empty batch must not fail: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 rows loaded, got %d", n)
	}
}

func TestLoadRejectsUnknownTenant(t *testing.T) {
	loader, _ := testLoader(t)

	if _, err := loader.Load(context.Background(), "d9", RowSet{Table: Orders, Rows: [][]any{orderRow("1")}}); err == nil {
		t.Error("Expected error for tenant outside the allow-list")
	}
}

func TestValidateTenant(t *testing.T) {
	tests := []struct {
		tenant  string
		wantErr bool
	}{
		{"d1", false},
		{"d2", false},
		{"d9", true},                       // not in allow-list
		{"d1; DROP TABLE d1_orders", true}, // shape rejected
		{"d1_orders", true},
		{"", true},
		{"1d", true},
	}

	for _, tt := range tests {
		err := ValidateTenant(tt.tenant, testTenants)
		if tt.wantErr && err == nil {
			t.Errorf("ValidateTenant(%q) expected error", tt.tenant)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("ValidateTenant(%q) returned error: %v", tt.tenant, err)
		}
	}
}

func TestIsConstraintIgnoresOtherErrors(t *testing.T) {
	if IsConstraint(errors.New("database is locked")) {
		t.Error("Plain error classified as a constraint violation")
	}
	if IsConstraint(nil) {
		t.Error("nil classified as a constraint violation")
	}
}

func TestInsertSQLPerPolicy(t *testing.T) {
	ordersSQL := insertSQL(Orders, "d1_orders")
	if ordersSQL != "INSERT INTO d1_orders (order_id, order_date, order_name, order_total, order_cost, order_tags, order_discounts, order_shipping, sales_channel_source, customer_id, customer_name) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)" {
		t.Errorf("Unexpected orders insert SQL: %s", ordersSQL)
	}

	customersSQL := insertSQL(Customers, "d1_customers")
	if want := "INSERT OR IGNORE INTO d1_customers"; customersSQL[:len(want)] != want {
		t.Errorf("Expected INSERT OR IGNORE for customers, got: %s", customersSQL)
	}

	channelsSQL := insertSQL(Channels, "d1_google_analytics")
	if want := "ON CONFLICT(channel_id) DO UPDATE SET channel_sessions = excluded.channel_sessions"; !strings.Contains(channelsSQL, want) {
		t.Errorf("Expected metric upsert clause, got: %s", channelsSQL)
	}
}
