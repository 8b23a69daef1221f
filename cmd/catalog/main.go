// Command catalog analyses a directory of documents, deduplicates
// identical content and groups the unique documents by similarity.
package main

import (
	"os"

	"github.com/custodia-labs/catalog-cli/internal/adapters/driving/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
