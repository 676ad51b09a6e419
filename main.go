// Command ideacbc encrypts and decrypts files with the IDEA block cipher in CBC mode.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/ideacbc/internal/commands"
	"github.com/idelchi/ideacbc/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown" //nolint:gochecknoglobals

func main() {
	var cfg config.Config

	if err := commands.NewRootCommand(&cfg, version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
