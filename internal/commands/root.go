package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/ideacbc/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// Flags are persistent so every subcommand accepts them; they can also be set
// through IDEACBC_* environment variables.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "ideacbc [flags] command [flags]"
	root.Short = "File encryption utility"
	root.Long = `A file encryption utility using the IDEA block cipher in CBC mode.
Provides commands for key generation, encryption, and decryption.`

	flags := root.PersistentFlags()

	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("dry", false, "Show which files would be processed without writing anything")
	flags.Bool("stats", false, "Print statistics when done")
	flags.Bool("preserve-timestamps", false, "Copy the input modification time to the output")

	flags.StringP("key", "k", "", "Encryption key, 16 bytes of text (or 32 hex characters with --hex)")
	flags.StringP("key-file", "f", "", "Path to a file holding the encryption key")
	flags.Bool("hex", false, "Treat the key or key file contents as hex-encoded")
	flags.BoolP("prompt", "p", false, "Read the key from the terminal")

	flags.StringP("output", "o", "", "Output path, only valid for a single input file")
	flags.String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")
	flags.StringSlice("include", nil, "find -path patterns selecting files when walking directories")
	flags.String("include-from", "", "Path to a JSONC file with an array of include patterns")
	flags.StringSlice("exclude", nil, "find -path patterns to skip when walking directories")
	flags.String("exclude-from", "", "Path to a JSONC file with an array of exclude patterns")

	root.AddCommand(NewEncryptCommand(cfg), NewDecryptCommand(cfg), NewGenerateCommand())

	return root
}
