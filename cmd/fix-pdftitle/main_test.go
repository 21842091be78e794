package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"filetools/internal/preflight"
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

func stubTools(t *testing.T, bin string) {
	t.Helper()
	testsupport.StubBinary(t, bin, "pdfinfo", `[ "$1" = "-v" ] && exit 0
case "$1" in *broken*) exit 1;; esac
printf 'Title: Untitled\nEncrypted: no\n'`)
	testsupport.StubBinary(t, bin, "qpdf", `[ "$1" = "--version" ] && exit 0
cp "$2" "$3"`)
	testsupport.StubBinary(t, bin, "gs", `[ "$1" = "--version" ] && exit 0
out="${5#-sOutputFile=}"
cat "$6" "$7" > "$out"`)
}

func TestRetitlesFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	bin := filepath.Join(dir, "bin")
	stubTools(t, bin)
	testsupport.PrependPath(t, bin)

	good := filepath.Join(dir, "acetone_safety_sheet.pdf")
	broken := filepath.Join(dir, "broken.pdf")
	testsupport.WriteFile(t, good, "%PDF\n")
	testsupport.WriteFile(t, broken, "junk")

	stdout, stderr, err := execute(t, "--summary", good, broken)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(testsupport.ReadFile(t, good), "/Title (acetone safety sheet)") {
		t.Fatal("expected title to be rewritten")
	}
	if testsupport.ReadFile(t, broken) != "junk" {
		t.Fatal("file without info should be left alone")
	}
	if !strings.Contains(stderr, "INFO: title of "+good+" changed") {
		t.Fatalf("expected retitle to be logged at the default level:\n%s", stderr)
	}
	if !strings.Contains(stderr, "ERROR: skipping "+broken) {
		t.Fatalf("expected skip to be logged:\n%s", stderr)
	}
	if !strings.Contains(stdout, "retitled") || !strings.Contains(stdout, "skipped") {
		t.Fatalf("expected actions in summary:\n%s", stdout)
	}
}

func TestMissingGhostscript(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	bin := filepath.Join(t.TempDir(), "bin")
	testsupport.StubBinary(t, bin, "pdfinfo", "exit 0")
	testsupport.StubBinary(t, bin, "qpdf", "exit 0")
	t.Setenv("PATH", bin)

	_, _, err := execute(t, "x.pdf")
	if !errors.Is(err, preflight.ErrMissingDependency) || !strings.Contains(err.Error(), `"gs"`) {
		t.Fatalf("expected missing gs, got %v", err)
	}
}
