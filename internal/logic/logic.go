// Package logic implements the run pipeline for the encrypt and decrypt commands.
package logic

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/ideacbc/internal/config"
	"github.com/idelchi/ideacbc/internal/encryption"
	"github.com/idelchi/ideacbc/internal/filter"
)

// ErrOutputWithManyFiles is returned when --output is combined with more than one input file.
var ErrOutputWithManyFiles = errors.New("--output requires exactly one input file")

// Run is the main logic of the application.
func Run(cfg *config.Config) error {
	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	excluded := scanned - len(cfg.Files)

	if cfg.Dry {
		dryRun(cfg, scanned, excluded, start)

		return nil
	}

	proc, err := encryption.NewProcessor(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(scanned, excluded, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// resolveFiles expands positional args into cfg.Files. When decrypting, directories
// only contribute files carrying the encrypted suffix.
// Returns the total number of files scanned before filtering.
func resolveFiles(cfg *config.Config) (int, error) {
	includes, err := patterns(cfg.Include, cfg.IncludeFrom)
	if err != nil {
		return 0, fmt.Errorf("loading include patterns: %w", err)
	}

	excludes, err := patterns(cfg.Exclude, cfg.ExcludeFrom)
	if err != nil {
		return 0, fmt.Errorf("loading exclude patterns: %w", err)
	}

	suffix := ""
	if cfg.Decrypt {
		suffix = cfg.Suffixes.Encrypt
	}

	flt, err := filter.New(includes, excludes, suffix)
	if err != nil {
		return 0, err
	}

	files, scanned, err := flt.Resolve(cfg.Files)
	if err != nil {
		return scanned, fmt.Errorf("filtering files: %w", err)
	}

	if cfg.Output != "" && len(files) != 1 {
		return scanned, fmt.Errorf("%w: %d files matched", ErrOutputWithManyFiles, len(files))
	}

	cfg.Files = files

	return scanned, nil
}

// patterns merges patterns given on the command line with those from a JSONC file.
func patterns(inline []string, file string) ([]string, error) {
	merged := append([]string{}, inline...)

	if file == "" {
		return merged, nil
	}

	loaded, err := filter.LoadPatterns(file)
	if err != nil {
		return nil, err
	}

	return append(merged, loaded...), nil
}

// dryRun previews what would be processed without actually encrypting/decrypting.
func dryRun(cfg *config.Config, scanned, excluded int, start time.Time) {
	var totalSize int64

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Printf("Would process %q -> %q\n", file, encryption.OutputPath(file, cfg)) //nolint:forbidigo
		}

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				totalSize += info.Size()
			}
		}
	}

	if cfg.Stats {
		printStats(scanned, excluded, len(cfg.Files), 0, totalSize, time.Since(start))
	}
}

func printStats(scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
