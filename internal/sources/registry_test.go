package sources_test

import (
	"testing"

	"github.com/commercedata/shopsync/internal/sources"
	// Import source packages to trigger their init() functions which register the sources
	_ "github.com/commercedata/shopsync/internal/sources/fake"
	_ "github.com/commercedata/shopsync/internal/sources/ga"
	_ "github.com/commercedata/shopsync/internal/sources/klaviyo"
	_ "github.com/commercedata/shopsync/internal/sources/shopify"
)

func TestGet(t *testing.T) {
	knownSources := []string{
		"shopify",
		"klaviyo",
		"ga",
		"fake",
	}

	for _, name := range knownSources {
		t.Run(name, func(t *testing.T) {
			src, err := sources.Get(name)
			if err != nil {
				t.Fatalf("Failed to get source '%s': %v", name, err)
			}
			if src == nil {
				t.Fatalf("Get('%s') returned nil", name)
			}

			if src.Name() != name {
				t.Errorf("Source name mismatch: expected '%s', got '%s'", name, src.Name())
			}
			if src.Description() == "" {
				t.Error("Source description should not be empty")
			}
			if len(src.Tables()) == 0 {
				t.Error("Source should load at least one table")
			}
		})
	}
}

func TestGetInvalidSource(t *testing.T) {
	_, err := sources.Get("nonexistent")
	if err == nil {
		t.Error("Expected error for nonexistent source, got nil")
	}
}

func TestGetEmptyName(t *testing.T) {
	_, err := sources.Get("")
	if err == nil {
		t.Error("Expected error for empty source name, got nil")
	}
}

func TestListSorted(t *testing.T) {
	names := sources.List()
	if len(names) == 0 {
		t.Fatal("List returned empty slice")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("List not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestAllMatchesList(t *testing.T) {
	names := sources.List()
	all := sources.All()
	if len(all) != len(names) {
		t.Fatalf("All returned %d sources, List returned %d names", len(all), len(names))
	}
	for i, src := range all {
		if src.Name() != names[i] {
			t.Errorf("All[%d] = %q, want %q", i, src.Name(), names[i])
		}
	}
}
