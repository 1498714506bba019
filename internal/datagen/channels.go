package datagen

import (
	"fmt"
	"time"

	"github.com/commercedata/shopsync/internal/channel"
)

// channelMix pairs a reported channel group with a traffic source, the
// two dimensions the web-analytics report is keyed by.
var channelMix = []struct {
	group  string
	source string
}{
	{"Paid Social", "fb_ads"},
	{"Paid Social", "instagram.com"},
	{"Organic Social", "tiktok"},
	{"Paid Search", "google"},
	{"Organic Search", "bing"},
	{"Direct", "(direct)"},
	{"Email", "klaviyo"},
	{"Referral", "partner.example.com"},
	{"Unassigned", "(not set)"},
}

// ChannelRows generates google_analytics rows for each day in the
// window, a handful of channel/source pairs per day. Rows are keyed and
// classified the same way as live report rows.
func ChannelRows(seed uint64, startDate string, days int) ([][]any, error) {
	faker := NewFakerWithSeed(seed)

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	var rows [][]any
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		for _, mix := range channelMix {
			if faker.Int(1, 4) == 1 {
				continue
			}
			sessions := faker.Int(20, 5000)
			carts := faker.Int(0, sessions/5)
			checkouts := faker.Int(0, carts)
			transactions := faker.Int(0, checkouts)

			rows = append(rows, []any{
				date + "_" + mix.group + "_" + mix.source,
				date,
				mix.group,
				channel.Classify(mix.group, mix.source),
				int64(sessions),
				int64(carts),
				int64(checkouts),
				float64(transactions),
				float64(transactions) * faker.Float64(30, 90),
			})
		}
	}
	return rows, nil
}
