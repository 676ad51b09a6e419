package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/idelchi/ideacbc/internal/fileutil"
)

func writeFile(t *testing.T, path string, data []byte, perm os.FileMode) {
	t.Helper()

	if err := os.WriteFile(path, data, perm); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")

	writeFile(t, src, []byte("source"), 0o644)

	tc, err := fileutil.NewTempContext(src, out)
	if err != nil {
		t.Fatalf("NewTempContext: %v", err)
	}

	if err := tc.Commit([]byte("result")); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	if string(got) != "result" {
		t.Errorf("output = %q, want %q", got, "result")
	}

	if _, err := os.Stat(tc.TmpName); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temporary file still present: %v", err)
	}
}

func TestCommitKeepsExecutableBit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "tool")
	out := filepath.Join(dir, "tool.enc")

	writeFile(t, src, []byte("#!/bin/sh\n"), 0o755)

	tc, err := fileutil.NewTempContext(src, out)
	if err != nil {
		t.Fatalf("NewTempContext: %v", err)
	}

	if !tc.IsExec {
		t.Fatal("IsExec = false for an executable source")
	}

	if err := tc.Commit([]byte("x")); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}

	if info.Mode().Perm() != 0o711 {
		t.Errorf("mode = %v, want 0711", info.Mode().Perm())
	}
}

func TestCleanupOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")

	writeFile(t, src, []byte("source"), 0o600)

	tc, err := fileutil.NewTempContext(src, out)
	if err != nil {
		t.Fatalf("NewTempContext: %v", err)
	}

	failure := errors.New("transform failed")
	tc.CleanupOnError(&failure)

	if _, err := os.Stat(tc.TmpName); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temporary file not removed: %v", err)
	}

	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output created on failure: %v", err)
	}
}

func TestFinalizeOutput(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out")
	writeFile(t, out, []byte("12345"), 0o600)

	modTime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

	size, err := fileutil.FinalizeOutput(out, true, modTime)
	if err != nil {
		t.Fatalf("FinalizeOutput: %v", err)
	}

	if size != 5 {
		t.Errorf("size = %d, want 5", size)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	if !info.ModTime().Equal(modTime) {
		t.Errorf("mod time = %v, want %v", info.ModTime(), modTime)
	}
}
