package encryption

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/ideacbc/internal/config"
	"github.com/idelchi/ideacbc/internal/fileutil"
	"github.com/idelchi/ideacbc/pkg/idea"
)

// ErrSamePath is returned when the derived output path would overwrite the input.
var ErrSamePath = errors.New("output path equals input path")

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// codec performs the per-file transform
	codec *Codec

	// key stores raw key bytes
	key []byte

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a new Processor with the given configuration.
// It loads the key and rejects any key that is not exactly 16 bytes.
func NewProcessor(cfg *config.Config, opts ...Option) (*Processor, error) {
	key, err := cfg.Key.Bytes()
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	if len(key) != idea.KeySize {
		if !cfg.Key.Hex && len(key) == 2*idea.KeySize {
			return nil, fmt.Errorf("%w (did you mean --hex?)", keySizeError(len(key)))
		}

		return nil, keySizeError(len(key))
	}

	return &Processor{
		cfg:     cfg,
		codec:   NewCodec(opts...),
		key:     key,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files and the number of errors.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Err != nil {
				errored++

				fmt.Fprintln(os.Stderr, result)

				continue
			}

			processed++

			totalSize += result.Size

			if !p.cfg.Quiet {
				fmt.Println(result) //nolint:forbidigo
			}

			if p.cfg.Delete {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := OutputPath(file, p.cfg)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Err: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, Size: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// processFile encrypts or decrypts a single file and finalizes the output.
func (p *Processor) processFile(filename, outPath string) (int64, error) {
	if filepath.Clean(filename) == filepath.Clean(outPath) {
		return 0, fmt.Errorf("%w: %q", ErrSamePath, filename)
	}

	info, err := os.Stat(filename)
	if err != nil {
		return 0, fmt.Errorf("%w: getting file info: %w", ErrIO, err)
	}

	if p.cfg.Decrypt {
		if err := p.codec.DecryptFile(filename, outPath, p.key); err != nil {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}
	} else {
		if err := p.codec.EncryptFile(filename, outPath, p.key); err != nil {
			return 0, fmt.Errorf("encrypting file: %w", err)
		}
	}

	size, err := fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, info.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// OutputPath derives the output path for filename: the explicit --output if set,
// otherwise the encrypt suffix is appended, or stripped and replaced by the
// decrypt suffix when decrypting. A file named exactly like the encrypt suffix
// keeps its name, so only the decrypt suffix is appended.
func OutputPath(filename string, cfg *config.Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}

	dir, base := filepath.Dir(filename), filepath.Base(filename)
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		if stripped := strings.TrimSuffix(base, cfg.Suffixes.Encrypt); stripped != "" {
			base = stripped
		}

		ext = cfg.Suffixes.Decrypt
	}

	return filepath.Join(dir, base+ext)
}
