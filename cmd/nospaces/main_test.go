package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filetools/internal/cli"
	"filetools/internal/testsupport"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersionAndUsageWithoutArguments(t *testing.T) {
	stdout, stderr, err := execute(t)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stderr, "nospaces version "+cli.Version) {
		t.Fatalf("expected version line, got %q", stderr)
	}
	if !strings.Contains(stdout+stderr, "Usage:") {
		t.Fatal("expected usage text")
	}
}

func TestRenamesFiles(t *testing.T) {
	dir := t.TempDir()
	spaced := filepath.Join(dir, "my  summer\tphotos.txt")
	plain := filepath.Join(dir, "plain.txt")
	testsupport.WriteFile(t, spaced, "a")
	testsupport.WriteFile(t, plain, "b")

	stdout, _, err := execute(t, spaced, plain)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "" {
		t.Fatalf("unexpected output %q", stdout)
	}
	if got := testsupport.ReadFile(t, filepath.Join(dir, "my_summer_photos.txt")); got != "a" {
		t.Fatalf("renamed file has %q", got)
	}
	if _, err := os.Stat(plain); err != nil {
		t.Fatalf("unchanged name should stay: %v", err)
	}
}

func TestReportsFailureAndContinues(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "a b")
	testsupport.WriteFile(t, blocked, "new")
	testsupport.WriteFile(t, filepath.Join(dir, "a_b"), "old")
	missing := filepath.Join(dir, "no such file")
	other := filepath.Join(dir, "c d")
	testsupport.WriteFile(t, other, "c")

	stdout, _, err := execute(t, blocked, missing, other)
	if err != nil {
		t.Fatalf("failures must not abort the run: %v", err)
	}
	if !strings.Contains(stdout, `Renaming "`+blocked+`" failed: file already exists`) {
		t.Fatalf("expected collision report, got %q", stdout)
	}
	if !strings.Contains(stdout, `Renaming "`+missing+`" failed: `) {
		t.Fatalf("expected missing file report, got %q", stdout)
	}
	if testsupport.ReadFile(t, filepath.Join(dir, "a_b")) != "old" {
		t.Fatal("existing target must not be overwritten")
	}
	if _, err := os.Stat(filepath.Join(dir, "c_d")); errors.Is(err, os.ErrNotExist) {
		t.Fatal("later arguments should still be renamed")
	}
}
