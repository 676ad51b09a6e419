package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/ideacbc/internal/config"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] paths...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Long: `Encrypt files with IDEA in CBC mode.

Each output holds a fresh random 8-byte IV followed by the PKCS#7-padded ciphertext.
Directories are walked recursively.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, false),
		RunE:    run(cfg),
	}
}
