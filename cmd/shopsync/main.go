// Package main is the entry point for shopsync.
package main

import (
	"fmt"
	"os"

	"github.com/commercedata/shopsync/internal/cli"

	// Register sources
	_ "github.com/commercedata/shopsync/internal/sources/fake"
	_ "github.com/commercedata/shopsync/internal/sources/ga"
	_ "github.com/commercedata/shopsync/internal/sources/klaviyo"
	_ "github.com/commercedata/shopsync/internal/sources/shopify"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
