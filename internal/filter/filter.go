// Package filter expands positional arguments into the list of files to process.
//
// Files named explicitly are always taken. Directories are walked recursively
// and their files kept if they carry the required suffix (when one is set),
// match an include pattern (when any are given) and match no exclude pattern.
//
// Patterns use find -path semantics (see pathmatch) against the path relative
// to the walked directory, with forward slashes. A pattern also matches when
// it matches the file's base name, so "*.log" and "notes.txt" work at any depth.
package filter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/ideacbc/pkg/pathmatch"
)

// ErrNoFiles is returned when the arguments resolve to an empty file list.
var ErrNoFiles = errors.New("no files matched")

// Filter selects files found while walking directories.
// Empty includes means "match all". Excludes always win.
type Filter struct {
	includes *pathmatch.Matcher
	excludes *pathmatch.Matcher
	suffix   string
}

// New compiles include/exclude patterns into a reusable filter.
// An empty suffix accepts every file name.
func New(includes, excludes []string, suffix string) (*Filter, error) {
	inc, err := pathmatch.NewMatcher(normalizePatterns(includes))
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := pathmatch.NewMatcher(normalizePatterns(excludes))
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc, suffix: suffix}, nil
}

// Match reports whether a file at rel, relative to the walked directory, should be processed.
func (f *Filter) Match(rel string) bool {
	rel = filepath.ToSlash(filepath.Clean(rel))
	base := filepath.Base(rel)

	if f.suffix != "" && !strings.HasSuffix(base, f.suffix) {
		return false
	}

	if f.includes.Len() > 0 && !f.includes.MatchAny(rel, base) {
		return false
	}

	return !f.excludes.MatchAny(rel, base)
}

// Resolve takes positional args (files/directories) and returns the files to process
// along with the number of candidates scanned.
func (f *Filter) Resolve(args []string) (files []string, scanned int, err error) {
	seen := make(map[string]struct{})

	add := func(file string) {
		if _, ok := seen[file]; ok {
			return
		}

		seen[file] = struct{}{}
		files = append(files, file)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			// Explicit file: bypass filtering, add directly.
			scanned++

			add(arg)

			continue
		}

		err = filepath.WalkDir(arg, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.Type().IsRegular() {
				return nil
			}

			scanned++

			rel, err := filepath.Rel(arg, file)
			if err != nil {
				return err
			}

			if f.Match(rel) {
				add(file)
			}

			return nil
		})
		if err != nil {
			return nil, 0, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("%w: %v", ErrNoFiles, args)
	}

	return files, scanned, nil
}

// normalizePatterns strips a leading "./" so patterns match cleaned relative paths.
func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))

	for _, p := range patterns {
		out = append(out, strings.TrimPrefix(p, "./"))
	}

	return out
}
