// Package klaviyo syncs email-campaign metadata and performance
// statistics from the Klaviyo API.
package klaviyo

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/commercedata/shopsync/internal/normalize"
)

// BuildCampaigns normalizes one campaigns page into partial rows:
// campaign_id, name, subject line, preview text and the send date
// attributed in the given zone. Statistics are joined on afterwards by
// MatchStats. Subject and preview come from the included
// campaign-message resources, index-aligned with the data array.
func BuildCampaigns(raw []byte, zone *time.Location) ([][]any, error) {
	data := gjson.GetBytes(raw, "data").Array()
	included := gjson.GetBytes(raw, "included").Array()

	var rows [][]any
	for i, item := range data {
		sent, err := normalize.ParseDateTime(item.Get("attributes.send_time").String())
		if err != nil {
			return nil, err
		}

		var subject, preview any
		if i < len(included) {
			content := included[i].Get("attributes.content")
			subject = content.Get("subject").String()
			preview = content.Get("preview_text").String()
		}

		rows = append(rows, []any{
			item.Get("id").String(),
			item.Get("attributes.name").String(),
			subject,
			preview,
			normalize.ToZone(sent, zone).Format("2006-01-02"),
		})
	}
	return rows, nil
}

// CampaignIDs extracts the campaign ids from partial campaign rows.
func CampaignIDs(campaigns [][]any) []string {
	ids := make([]string, 0, len(campaigns))
	for _, row := range campaigns {
		if id, ok := row[0].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// BuildStats normalizes a campaign-values report into per-campaign
// counter rows: campaign_id, delivered, opens, clicks, conversions,
// unsubscribes, bounced, spam complaints.
func BuildStats(raw []byte) [][]any {
	var rows [][]any
	for _, result := range gjson.GetBytes(raw, "data.attributes.results").Array() {
		stats := result.Get("statistics")
		rows = append(rows, []any{
			result.Get("groupings.campaign_id").String(),
			stats.Get("delivered").Int(),
			stats.Get("opens_unique").Int(),
			stats.Get("clicks_unique").Int(),
			stats.Get("conversions").Int(),
			stats.Get("unsubscribes").Int(),
			stats.Get("bounced").Int(),
			stats.Get("spam_complaints").Int(),
		})
	}
	return rows
}

// MatchStats inner-joins campaign rows with their statistics by
// campaign id, producing full klaviyo_campaigns rows. Campaigns without
// statistics are dropped; the next sync picks them up once the report
// covers them.
func MatchStats(campaigns, stats [][]any) [][]any {
	byID := make(map[string][]any, len(stats))
	for _, row := range stats {
		if id, ok := row[0].(string); ok {
			byID[id] = row
		}
	}

	var rows [][]any
	for _, campaign := range campaigns {
		id, ok := campaign[0].(string)
		if !ok {
			continue
		}
		stat, ok := byID[id]
		if !ok {
			continue
		}
		row := make([]any, 0, len(campaign)+len(stat)-1)
		row = append(row, campaign...)
		row = append(row, stat[1:]...)
		rows = append(rows, row)
	}
	return rows
}
