package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filetools/internal/gitlog"
	"filetools/internal/testsupport"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func stubGit(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	bin := filepath.Join(t.TempDir(), "bin")
	testsupport.StubBinary(t, bin, "git", `printf '%s\n' 'f00ba12 (HEAD -> main) Add 100% coverage.' 'e0e0e0e Fix $PATH_var'`)
	testsupport.PrependPath(t, bin)
}

func TestUsageWithoutArguments(t *testing.T) {
	stubGit(t)
	stdout, stderr, err := execute(t)
	if err != nil {
		t.Fatalf("expected usage without error, got %v", err)
	}
	if !strings.Contains(stdout+stderr, "Usage:") {
		t.Fatalf("expected usage text, got %q / %q", stdout, stderr)
	}
}

func TestWritesToStdout(t *testing.T) {
	stubGit(t)
	stdout, _, err := execute(t, "-")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := gitlog.Header +
		`\texttt{f00ba12} Add 100\% coverage\\` + "\n" +
		`\texttt{e0e0e0e} Fix \$PATH\_var`
	if stdout != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", stdout, want)
	}
}

func TestWritesFile(t *testing.T) {
	stubGit(t)
	out := filepath.Join(t.TempDir(), "history.tex")
	if _, _, err := execute(t, out); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), gitlog.Header) {
		t.Fatalf("missing header in %q", data)
	}
}

func TestGitMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATH", t.TempDir())
	_, _, err := execute(t, "-")
	if err == nil || !strings.HasPrefix(err.Error(), "git not found") {
		t.Fatalf("expected git not found, got %v", err)
	}
}
