package assistant

import (
	"strings"
	"testing"
)

func TestCheckQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		tenant  string
		domain  Domain
		wantErr string
	}{
		{
			name:   "simple select",
			query:  "SELECT SUM(order_total) FROM acme_orders WHERE date(order_date) >= '2024-01-01';",
			tenant: "acme",
			domain: DomainShop,
		},
		{
			name: "join across shop tables",
			query: "SELECT c.customer_name, SUM(o.order_total) FROM acme_orders o " +
				"JOIN acme_customers c ON o.customer_id = c.customer_id GROUP BY c.customer_name",
			tenant: "acme",
			domain: DomainShop,
		},
		{
			name:   "cte",
			query:  "WITH spend AS (SELECT customer_id, SUM(order_total) t FROM acme_orders GROUP BY customer_id) SELECT * FROM spend",
			tenant: "acme",
			domain: DomainShop,
		},
		{
			name:   "column containing keyword substring",
			query:  "SELECT ordered_quantity FROM acme_line_items",
			tenant: "acme",
			domain: DomainShop,
		},
		{
			name:    "insert rejected",
			query:   "INSERT INTO acme_orders VALUES (1)",
			tenant:  "acme",
			domain:  DomainShop,
			wantErr: "only SELECT",
		},
		{
			name:    "update smuggled into select",
			query:   "SELECT * FROM acme_orders; UPDATE acme_orders SET order_total = 0",
			tenant:  "acme",
			domain:  DomainShop,
			wantErr: "multiple statements",
		},
		{
			name:    "drop rejected case-insensitively",
			query:   "select * from acme_orders where order_id in (select 1) AND 1=1 /* DROP */",
			tenant:  "acme",
			domain:  DomainShop,
			wantErr: "drop",
		},
		{
			name:    "other tenant table",
			query:   "SELECT * FROM globex_orders",
			tenant:  "acme",
			domain:  DomainShop,
			wantErr: "another tenant",
		},
		{
			name:    "table outside domain",
			query:   "SELECT * FROM acme_klaviyo_campaigns",
			tenant:  "acme",
			domain:  DomainShop,
			wantErr: "outside the shop domain",
		},
		{
			name:   "email domain allows campaigns",
			query:  "SELECT subject_line FROM acme_klaviyo_campaigns",
			tenant: "acme",
			domain: DomainEmail,
		},
		{
			name:    "email domain blocks orders",
			query:   "SELECT * FROM acme_orders",
			tenant:  "acme",
			domain:  DomainEmail,
			wantErr: "outside the email domain",
		},
		{
			name:   "analytics domain",
			query:  "SELECT channel_name, SUM(channel_sessions) FROM acme_google_analytics GROUP BY channel_name",
			tenant: "acme",
			domain: DomainAnalytics,
		},
		{
			name:    "sqlite_master rejected",
			query:   "SELECT name FROM sqlite_master",
			tenant:  "acme",
			domain:  DomainShop,
			wantErr: "sqlite_master",
		},
		{
			name:    "metadata table rejected",
			query:   "SELECT * FROM shopsync_metadata",
			tenant:  "acme",
			domain:  DomainShop,
			wantErr: "shopsync_metadata",
		},
		{
			name:    "pragma rejected",
			query:   "SELECT * FROM acme_orders WHERE 1 = (SELECT 1) -- pragma table_info",
			tenant:  "acme",
			domain:  DomainShop,
			wantErr: "pragma",
		},
		{
			name:    "no tenant table referenced",
			query:   "SELECT 1",
			tenant:  "acme",
			domain:  DomainShop,
			wantErr: "no tenant tables",
		},
		{
			name:    "empty query",
			query:   "   ",
			tenant:  "acme",
			domain:  DomainShop,
			wantErr: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckQuery(tt.query, tt.tenant, tt.domain)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("CheckQuery rejected valid query: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("CheckQuery accepted query, want rejection")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		s    string
		word string
		want bool
	}{
		{"select created_at from t", "create", false},
		{"select * from t; create table x", "create", true},
		{"update", "update", true},
		{"updated_total", "update", false},
		{"a insert b", "insert", true},
	}
	for _, tt := range tests {
		if got := containsWord(tt.s, tt.word); got != tt.want {
			t.Errorf("containsWord(%q, %q) = %v, want %v", tt.s, tt.word, got, tt.want)
		}
	}
}
