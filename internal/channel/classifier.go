// Package channel classifies raw analytics (channel-group, source) pairs
// into canonical channel-source tags.
package channel

import "strings"

// rule maps a substring of the raw source string to a canonical tag.
type rule struct {
	match string
	tag   string
}

// group selects a rule set by substring match on the channel grouping.
// Within a group the first matching source rule wins; fallback applies
// when no rule matches.
type group struct {
	match    string
	rules    []rule
	fallback string
}

// The decision table mirrors the upstream analytics channel taxonomy.
// Groups are evaluated in order; an unmatched group yields an empty tag
// (taxonomies evolve, so a gap is not an error). Extend here, not in
// Classify.
var groups = []group{
	{
		match: "email",
		rules: []rule{
			{"klaviyo", "klaviyo"},
			{"shopify", "shopify"},
		},
		fallback: "other",
	},
	{match: "referral", fallback: "other"},
	{match: "unassigned", fallback: "unknown"},
	{
		match:    "cross-network",
		rules:    []rule{{"google", "google"}},
		fallback: "other",
	},
	{match: "direct", fallback: "direct"},
	{match: "affiliates", fallback: "affiliates"},
	{
		match:    "display",
		rules:    []rule{{"google", "google"}},
		fallback: "other",
	},
	{
		match: "organic social",
		rules: []rule{
			{"facebook", "facebook"},
			{"instagram", "instagram"},
			{"pinterest", "pinterest"},
			{"reddit", "reddit"},
		},
		fallback: "other",
	},
	{
		match: "organic search",
		rules: []rule{
			{"google", "google"},
			{"bing", "bing"},
			{"yahoo", "yahoo"},
			{"duckduck", "duckduckgo"},
		},
		fallback: "other",
	},
	{
		match: "organic shopping",
		rules: []rule{
			{"igshopping", "igshopping"},
			{"google", "google"},
		},
		fallback: "other",
	},
	{
		match: "paid social",
		rules: []rule{
			{"facebook", "facebook"},
			{"fb", "facebook"},
			{"pinterest", "pinterest"},
		},
		fallback: "other",
	},
	{
		match: "paid search",
		rules: []rule{
			{"bing", "bing"},
			{"google", "google"},
		},
		fallback: "other",
	},
	{
		match: "paid shopping",
		rules: []rule{
			{"bing", "bing"},
			{"google", "google"},
		},
		fallback: "other",
	},
	{
		match: "paid video",
		rules: []rule{
			{"bing", "bing"},
			{"google", "google"},
		},
		fallback: "other",
	},
	{match: "paid other", fallback: "paid other"},
	{
		match:    "organic video",
		rules:    []rule{{"youtube", "youtube"}},
		fallback: "other",
	},
}

// Classify maps a channel grouping and a free-text source to a canonical
// lowercase tag. Matching is case-insensitive substring on both levels.
func Classify(channelGroup, source string) string {
	channelGroup = strings.ToLower(channelGroup)
	source = strings.ToLower(source)

	for _, g := range groups {
		if !strings.Contains(channelGroup, g.match) {
			continue
		}
		for _, r := range g.rules {
			if strings.Contains(source, r.match) {
				return r.tag
			}
		}
		return g.fallback
	}
	return ""
}
