package pathmatch_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/ideacbc/pkg/pathmatch"
)

type Case struct {
	Pattern     string `yaml:"pattern"`
	Path        string `yaml:"path"`
	Match       bool   `yaml:"match"`
	Description string `yaml:"description"`
}

type Group struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

func loadGroups(t *testing.T) []Group {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "match.yml"))
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	var groups []Group
	if err := yaml.Unmarshal(data, &groups); err != nil {
		t.Fatalf("parsing golden file: %v", err)
	}

	if len(groups) == 0 {
		t.Fatal("golden file holds no groups")
	}

	return groups
}

// forEachCase runs fn as a parallel subtest per golden case, nested by group.
func forEachCase(t *testing.T, fn func(t *testing.T, tc Case)) {
	t.Helper()

	for _, g := range loadGroups(t) {
		t.Run(g.Name, func(t *testing.T) {
			t.Parallel()

			for _, tc := range g.Cases {
				t.Run(tc.Description, func(t *testing.T) {
					t.Parallel()
					fn(t, tc)
				})
			}
		})
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	forEachCase(t, func(t *testing.T, tc Case) {
		t.Helper()

		got, err := pathmatch.Match(tc.Pattern, tc.Path)
		if err != nil {
			t.Fatalf("Match(%q, %q): %v", tc.Pattern, tc.Path, err)
		}

		if got != tc.Match {
			t.Errorf("Match(%q, %q) = %v, want %v", tc.Pattern, tc.Path, got, tc.Match)
		}
	})
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	forEachCase(t, func(t *testing.T, tc Case) {
		t.Helper()

		m, err := pathmatch.NewMatcher([]string{"no-such-name", tc.Pattern})
		if err != nil {
			t.Fatalf("NewMatcher(%q): %v", tc.Pattern, err)
		}

		if got := m.MatchAny("unrelated/path", tc.Path); got != tc.Match {
			t.Errorf("MatchAny(%q) with %q = %v, want %v", tc.Path, tc.Pattern, got, tc.Match)
		}
	})
}

func TestEmptyMatcher(t *testing.T) {
	t.Parallel()

	m, err := pathmatch.NewMatcher(nil)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	if m.Len() != 0 || m.MatchAny("anything") {
		t.Error("an empty matcher must match nothing")
	}
}

func TestInvalidPatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    error
	}{
		{"[abc", pathmatch.ErrUnclosedClass},
		{"[]", pathmatch.ErrUnclosedClass},
		{`trailing\`, pathmatch.ErrTrailingEscape},
	}

	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			t.Parallel()

			if _, err := pathmatch.Match(tc.pattern, "x"); !errors.Is(err, tc.want) {
				t.Errorf("Match(%q) error = %v, want %v", tc.pattern, err, tc.want)
			}

			if _, err := pathmatch.NewMatcher([]string{tc.pattern}); !errors.Is(err, tc.want) {
				t.Errorf("NewMatcher(%q) error = %v, want %v", tc.pattern, err, tc.want)
			}
		})
	}
}

// TestFindParity checks the golden cases against find(1) itself by creating each
// path in a temporary directory.
func TestFindParity(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("find"); err != nil {
		t.Skip("find not available")
	}

	forEachCase(t, func(t *testing.T, tc Case) {
		t.Helper()

		root := t.TempDir()
		file := filepath.Join(root, filepath.FromSlash(tc.Path))

		if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
			t.Fatalf("creating parent of %q: %v", tc.Path, err)
		}

		if err := os.WriteFile(file, nil, 0o600); err != nil {
			t.Fatalf("creating %q: %v", tc.Path, err)
		}

		//nolint:gosec // arguments come from the golden file
		out, err := exec.Command("find", root, "-type", "f", "-path", root+"/"+tc.Pattern).Output()
		if err != nil {
			t.Fatalf("running find: %v", err)
		}

		if found := strings.TrimSpace(string(out)) != ""; found != tc.Match {
			t.Errorf("find -path %q on %q = %v, golden file says %v", tc.Pattern, tc.Path, found, tc.Match)
		}
	})
}
