package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

// Keywords that mutate state or escape the tenant's tables. The model
// is instructed to stay read-only, but generated SQL is still untrusted
// input.
var forbiddenKeywords = []string{
	"insert", "update", "delete", "drop", "alter", "create", "replace",
	"attach", "detach", "pragma", "vacuum", "reindex", "trigger",
	"sqlite_master", "sqlite_schema", "shopsync_metadata",
}

// tableRef matches tenant-style table references: prefix_entity where
// the entity is one of the known table suffixes.
var tableRef = regexp.MustCompile(`\b([a-zA-Z][a-zA-Z0-9]*)_(orders|customers|line_items|klaviyo_campaigns|google_analytics)\b`)

// CheckQuery verifies a generated query is a single read-only SELECT
// confined to the tenant's tables for the given domain.
func CheckQuery(query, tenant string, domain Domain) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("empty query")
	}

	// One statement only. A trailing semicolon is fine.
	if strings.Contains(strings.TrimSuffix(trimmed, ";"), ";") {
		return fmt.Errorf("multiple statements are not allowed")
	}

	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "select") && !strings.HasPrefix(lower, "with") {
		return fmt.Errorf("only SELECT queries are allowed")
	}

	for _, keyword := range forbiddenKeywords {
		if containsWord(lower, keyword) {
			return fmt.Errorf("forbidden keyword %q in query", keyword)
		}
	}

	allowed := make(map[string]bool)
	for _, entity := range domain.Tables() {
		allowed[entity] = true
	}

	refs := tableRef.FindAllStringSubmatch(lower, -1)
	if len(refs) == 0 {
		return fmt.Errorf("query references no tenant tables")
	}
	for _, ref := range refs {
		prefix, entity := ref[1], ref[2]
		if prefix != strings.ToLower(tenant) {
			return fmt.Errorf("table %s_%s belongs to another tenant", prefix, entity)
		}
		if !allowed[entity] {
			return fmt.Errorf("table %s_%s is outside the %s domain", prefix, entity, domain)
		}
	}
	return nil
}

// containsWord reports whether word appears in s bounded by
// non-identifier characters.
func containsWord(s, word string) bool {
	for start := 0; ; {
		idx := strings.Index(s[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)
		beforeOK := idx == 0 || !isIdentChar(s[idx-1])
		afterOK := end == len(s) || !isIdentChar(s[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
