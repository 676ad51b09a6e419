package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/ideacbc/internal/config"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] paths...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Long: `Decrypt files produced by the encrypt command.

Directories contribute only files ending in the encrypt suffix.
A wrong key is usually, but not always, reported as invalid padding.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, true),
		RunE:    run(cfg),
	}
}
