// Package ga syncs per-channel web-analytics metrics from the GA4 Data
// API.
package ga

import (
	"sort"

	"github.com/tidwall/gjson"

	"github.com/commercedata/shopsync/internal/channel"
	"github.com/commercedata/shopsync/internal/normalize"
)

// BuildChannels normalizes a runReport response into channel-day rows
// keyed by date_channelname_rawsource. The sequence is sorted by key so
// batch loads are reproducible regardless of upstream ordering.
func BuildChannels(raw []byte) ([][]any, error) {
	var rows [][]any
	for _, row := range gjson.GetBytes(raw, "rows").Array() {
		dims := row.Get("dimensionValues").Array()
		metrics := row.Get("metricValues").Array()
		if len(dims) < 3 || len(metrics) < 5 {
			return nil, &normalize.FormatError{Field: "report row", Value: row.Raw}
		}

		name := dims[0].Get("value").String()
		date, err := normalize.ParseDate(dims[1].Get("value").String())
		if err != nil {
			return nil, err
		}
		rawSource := dims[2].Get("value").String()

		rows = append(rows, []any{
			date + "_" + name + "_" + rawSource,
			date,
			name,
			channel.Classify(name, rawSource),
			metrics[0].Get("value").Int(),
			metrics[1].Get("value").Int(),
			metrics[2].Get("value").Int(),
			metrics[3].Get("value").Float(),
			metrics[4].Get("value").Float(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i][0].(string) < rows[j][0].(string)
	})
	return rows, nil
}
