package klaviyo

import (
	"testing"
	"time"
)

const campaignsPage = `{
  "data": [
    {
      "id": "C1",
      "attributes": {
        "name": "Spring Promo",
        "send_time": "2024-03-02T02:30:00+00:00"
      }
    },
    {
      "id": "C2",
      "attributes": {
        "name": "Restock Alert",
        "send_time": "2024-03-10T15:00:00+00:00"
      }
    }
  ],
  "included": [
    {"attributes": {"content": {"subject": "Save 20%", "preview_text": "This week only"}}},
    {"attributes": {"content": {"subject": "Back in stock", "preview_text": "Get yours"}}}
  ],
  "links": {"next": null}
}`

const statsReport = `{
  "data": {
    "attributes": {
      "results": [
        {
          "groupings": {"campaign_id": "C1"},
          "statistics": {
            "delivered": 1000, "opens_unique": 300, "clicks_unique": 50,
            "conversions": 10, "unsubscribes": 2, "bounced": 5,
            "spam_complaints": 1
          }
        }
      ]
    }
  }
}`

func centralZone(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("US/Central")
	if err != nil {
		t.Skipf("US/Central not available: %v", err)
	}
	return loc
}

func TestBuildCampaigns(t *testing.T) {
	rows, err := BuildCampaigns([]byte(campaignsPage), centralZone(t))
	if err != nil {
		t.Fatalf("BuildCampaigns returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 campaign rows, got %d", len(rows))
	}

	first := rows[0]
	if first[0] != "C1" || first[1] != "Spring Promo" {
		t.Errorf("Unexpected campaign identity: %v / %v", first[0], first[1])
	}
	if first[2] != "Save 20%" || first[3] != "This week only" {
		t.Errorf("Unexpected content fields: %v / %v", first[2], first[3])
	}
	// 02:30 UTC on March 2 is still March 1 in US/Central (CST, UTC-6).
	if first[4] != "2024-03-01" {
		t.Errorf("Expected zone-attributed send date '2024-03-01', got %v", first[4])
	}
}

func TestBuildCampaignsBadSendTimeFails(t *testing.T) {
	page := `{"data": [{"id": "C9", "attributes": {"name": "Broken", "send_time": "soon"}}]}`
	if _, err := BuildCampaigns([]byte(page), time.UTC); err == nil {
		t.Fatal("Expected error for unparseable send time")
	}
}

func TestCampaignIDs(t *testing.T) {
	rows, err := BuildCampaigns([]byte(campaignsPage), time.UTC)
	if err != nil {
		t.Fatalf("BuildCampaigns returned error: %v", err)
	}
	ids := CampaignIDs(rows)
	if len(ids) != 2 || ids[0] != "C1" || ids[1] != "C2" {
		t.Errorf("Unexpected campaign ids: %v", ids)
	}
}

func TestBuildStats(t *testing.T) {
	rows := BuildStats([]byte(statsReport))
	if len(rows) != 1 {
		t.Fatalf("Expected 1 stats row, got %d", len(rows))
	}
	row := rows[0]
	if row[0] != "C1" {
		t.Errorf("Expected campaign id 'C1', got %v", row[0])
	}
	if row[1] != int64(1000) || row[2] != int64(300) || row[7] != int64(1) {
		t.Errorf("Unexpected counters: %v", row)
	}
}

func TestMatchStats(t *testing.T) {
	campaigns, err := BuildCampaigns([]byte(campaignsPage), time.UTC)
	if err != nil {
		t.Fatalf("BuildCampaigns returned error: %v", err)
	}
	stats := BuildStats([]byte(statsReport))

	matched := MatchStats(campaigns, stats)

	// C2 has no statistics yet and is dropped from this page.
	if len(matched) != 1 {
		t.Fatalf("Expected 1 matched row, got %d", len(matched))
	}
	row := matched[0]
	if len(row) != 12 {
		t.Fatalf("Expected 12 columns, got %d", len(row))
	}
	if row[0] != "C1" || row[1] != "Spring Promo" {
		t.Errorf("Unexpected identity columns: %v / %v", row[0], row[1])
	}
	if row[5] != int64(1000) || row[6] != int64(300) {
		t.Errorf("Unexpected delivered/opens: %v / %v", row[5], row[6])
	}
	if row[11] != int64(1) {
		t.Errorf("Unexpected spam complaints: %v", row[11])
	}
}
