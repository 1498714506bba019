package datagen

import (
	"fmt"
	"time"
)

var campaignThemes = []string{
	"Spring Sale", "New Arrivals", "VIP Early Access", "Weekend Flash Sale",
	"Back in Stock", "Holiday Gift Guide", "Loyalty Rewards", "Clearance",
}

// CampaignRows generates full klaviyo_campaigns rows: deterministic
// ids, plausible funnel counters where each stage is bounded by the one
// above it.
func CampaignRows(seed uint64, startDate, endDate string, count int) ([][]any, error) {
	faker := NewFakerWithSeed(seed)

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	rows := make([][]any, 0, count)
	for i := 1; i <= count; i++ {
		theme := Choose(faker, campaignThemes)
		delivered := faker.Int(500, 20000)
		opens := faker.Int(0, delivered/2)
		clicks := faker.Int(0, opens)
		conversions := faker.Int(0, clicks)

		rows = append(rows, []any{
			fmt.Sprintf("seed-campaign-%04d", i),
			fmt.Sprintf("%s %d", theme, i),
			faker.Sentence(6),
			faker.Sentence(8),
			faker.DateRange(start, end).Format("2006-01-02"),
			delivered,
			opens,
			clicks,
			conversions,
			faker.Int(0, delivered/100),
			faker.Int(0, delivered/50),
			faker.Int(0, 10),
		})
	}
	return rows, nil
}
