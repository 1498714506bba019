package store

import (
	"fmt"
	"regexp"
)

// Tenant identifiers become table-name prefixes, so they are checked
// against both a shape rule and the configured allow-list before any
// SQL is built from them.
var tenantPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]{0,15}$`)

// ValidateTenant checks a tenant identifier against the allow-list.
func ValidateTenant(tenant string, allowed []string) error {
	if !tenantPattern.MatchString(tenant) {
		return fmt.Errorf("invalid tenant identifier: %q", tenant)
	}
	for _, id := range allowed {
		if id == tenant {
			return nil
		}
	}
	return fmt.Errorf("tenant %q is not in the configured allow-list", tenant)
}
