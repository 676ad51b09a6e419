// Package commands provides the command-line interface for the ideacbc tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - key generation
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/showa-93/go-mask"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/ideacbc/internal/config"
	"github.com/idelchi/ideacbc/internal/logic"
)

// ErrNoTerminal is returned when --prompt is used without an interactive terminal.
var ErrNoTerminal = errors.New("--prompt requires an interactive terminal")

// preRun returns a PreRunE handler that resolves positional args into cfg.Files
// and validates the configuration. Flags and IDEACBC_* environment variables are
// bound to viper by the root command before it runs.
func preRun(cfg *config.Config, decrypt bool) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Decrypt = decrypt
		cfg.Files = args

		// --show renders YAML to the command output, so it skips cobraext's JSON printer.
		if viper.GetBool("show") {
			if err := viper.Unmarshal(cfg); err != nil {
				return fmt.Errorf("unmarshalling config: %w", err)
			}

			return nil
		}

		if err := cobraext.Validate(cfg, cfg); err != nil {
			return err //nolint:wrapcheck
		}

		if cfg.Key.Prompt {
			key, err := promptKey()
			if err != nil {
				return err
			}

			cfg.Key.String = key
		}

		return nil
	}
}

// run executes the command, or prints the configuration when --show is set.
func run(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if cfg.Show {
			return show(cmd.OutOrStdout(), cfg)
		}

		return logic.Run(cfg)
	}
}

// show prints the configuration as YAML with the key masked.
func show(w io.Writer, cfg *config.Config) error {
	masked, err := mask.Mask(*cfg)
	if err != nil {
		return fmt.Errorf("masking configuration: %w", err)
	}

	out, err := yaml.Marshal(masked)
	if err != nil {
		return fmt.Errorf("rendering configuration: %w", err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}

	return nil
}

// promptKey reads the key from the terminal without echo.
func promptKey() (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int

	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}

	fmt.Fprint(os.Stderr, "Key: ")

	key, err := term.ReadPassword(fd)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}

	return string(key), nil
}
