// Command ankify resolves Japanese selections into dictionary entries.
package main

import (
	"os"

	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
