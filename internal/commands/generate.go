package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/key"
	"github.com/idelchi/ideacbc/pkg/idea"
)

// NewGenerateCommand creates a command printing a fresh random key, hex-encoded for use with --hex.
func NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a new encryption key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			generated, err := key.New(idea.KeySize)
			if err != nil {
				return fmt.Errorf("generating key: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), generated.AsHex())

			return nil
		},
	}
}
