// Command smd is an interactive viewer for the output of protein
// design pipelines.
package main

import (
	"fmt"
	"os"

	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
