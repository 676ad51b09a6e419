// Package config defines the runtime configuration shared by all commands.
package config

import (
	"errors"
	"fmt"

	"github.com/idelchi/gogen/pkg/validator"
)

// Config holds the resolved flags, environment variables and positional arguments.
type Config struct {
	// Show prints the configuration and exits
	Show bool

	// Key selects where the encryption key comes from
	Key Key `mapstructure:",squash"`

	// Suffixes controls output file naming
	Suffixes Suffixes `mapstructure:",squash"`

	// Parallel is the number of files processed concurrently
	Parallel int `label:"--parallel" validate:"min=1"`

	// Quiet suppresses per-file success lines
	Quiet bool

	// Delete removes the input after a successful run
	Delete bool

	// Dry lists what would be processed without writing anything
	Dry bool

	// Stats prints a summary after processing
	Stats bool

	// PreserveTimestamps copies the input modification time to the output
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Output is an explicit output path, valid for a single input file only
	Output string

	// Include restricts directory walks to files matching any of these patterns
	Include []string

	// IncludeFrom is a JSONC file with additional include patterns
	IncludeFrom string `mapstructure:"include-from"`

	// Exclude holds patterns skipped while walking directories
	Exclude []string

	// ExcludeFrom is a JSONC file with additional exclude patterns
	ExcludeFrom string `mapstructure:"exclude-from"`

	// Decrypt is set by the decrypt command
	Decrypt bool `mapstructure:"-" yaml:"-"`

	// Files are the positional arguments, later the resolved file list
	Files []string `label:"paths" mapstructure:"-" validate:"min=1"`
}

// Suffixes holds the file name suffixes used to derive output paths.
type Suffixes struct {
	Encrypt string `label:"--encrypt-ext" mapstructure:"encrypt-ext" validate:"required"`
	Decrypt string `label:"--decrypt-ext" mapstructure:"decrypt-ext"`
}

// Display reports whether the configuration should be printed instead of run.
func (c *Config) Display() bool {
	return c.Show
}

// Validate validates the configuration against the struct tags.
// Every failing field is reported, joined into a single error.
func (c *Config) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerExclusive(validator); err != nil {
		return fmt.Errorf("registering exclusive: %w", err)
	}

	return errors.Join(validator.Validate(config)...)
}
