// stree scans a directory for its heaviest files (or reads an existing
// report) and renders the result as a storage tree.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/stree/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}
