// Package normalize provides the pure transformation primitives shared by
// all row builders: date and timezone handling, tag de-duplication,
// nested-field extraction with fallback, and monetary parsing/rounding.
package normalize

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// FormatError reports an unparseable required field. A bad date or a bad
// required money amount corrupts the row key or a user-facing total, so
// these surface to the caller instead of degrading to a sentinel.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unparseable %s: %q", e.Field, e.Value)
}

// Date layouts accepted by ParseDate, tried in order. Shopify emits
// ISO-8601 with a zone, GA4 emits compact YYYYMMDD.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"20060102",
	"2006-01-02",
}

// ParseDate normalizes a platform timestamp to YYYY-MM-DD.
func ParseDate(raw string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", &FormatError{Field: "date", Value: raw}
}

// ParseDateTime parses an ISO-8601 timestamp. Inputs without an explicit
// zone are taken as UTC.
func ParseDateTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, &FormatError{Field: "timestamp", Value: raw}
}

// ToZone converts a timestamp to the given zone. Used for campaign
// send-time attribution; the input is assumed UTC.
func ToZone(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}

// DedupeTags joins the de-duplicated set of tags with single spaces.
// Absent input yields an empty string; it never fails. The set is sorted
// so the stored value is stable across runs (order is not significant).
func DedupeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(tags))
	unique := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		unique = append(unique, tag)
	}
	sort.Strings(unique)
	return strings.Join(unique, " ")
}

// TagStrings converts a gjson array result into a tag slice. Non-array
// input yields nil.
func TagStrings(result gjson.Result) []string {
	if !result.IsArray() {
		return nil
	}
	var tags []string
	for _, item := range result.Array() {
		tags = append(tags, item.String())
	}
	return tags
}

// StringOr returns the string at path, or fallback when the path is
// absent or the terminal value is null.
func StringOr(raw []byte, path, fallback string) string {
	result := gjson.GetBytes(raw, path)
	if !result.Exists() || result.Type == gjson.Null {
		return fallback
	}
	return result.String()
}

// RoundMoney rounds a monetary value half-to-even at two decimals.
func RoundMoney(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// RequiredMoney parses the money amount at path. Missing or unparseable
// input is a FormatError: a silently zeroed total is worse than a loud
// stop.
func RequiredMoney(raw []byte, path string) (float64, error) {
	result := gjson.GetBytes(raw, path)
	if !result.Exists() || result.Type == gjson.Null {
		return 0, &FormatError{Field: path, Value: ""}
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(result.String()), 64)
	if err != nil {
		return 0, &FormatError{Field: path, Value: result.String()}
	}
	return amount, nil
}

// OptionalMoney parses the money amount at path, treating missing or
// unparseable input as 0. Cost data is frequently absent upstream.
func OptionalMoney(raw []byte, path string) float64 {
	result := gjson.GetBytes(raw, path)
	if !result.Exists() || result.Type == gjson.Null {
		return 0
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(result.String()), 64)
	if err != nil {
		return 0
	}
	return amount
}

// TrimIDPrefix strips the URI prefix from a platform-native identifier,
// e.g. "gid://shopify/Order/123" becomes "123".
func TrimIDPrefix(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
