package procexec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunReportsExitStatus(t *testing.T) {
	script := writeScript(t, "fail", "exit 3")
	out := Run(context.Background(), Command{Args: []string{script}})
	if out.Status != 3 {
		t.Fatalf("expected status 3, got %d", out.Status)
	}
	if out.Err != nil {
		t.Fatalf("non-zero exit should not set Err, got %v", out.Err)
	}
	if out.OK() {
		t.Fatal("expected OK() to be false")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	script := writeScript(t, "echo", `echo "hello $1"; echo oops >&2`)
	out := Run(context.Background(), Command{Args: []string{script, "world"}, Capture: true})
	if !out.OK() {
		t.Fatalf("expected success, got status %d err %v", out.Status, out.Err)
	}
	if strings.TrimSpace(string(out.Stdout)) != "hello world" {
		t.Fatalf("unexpected stdout %q", out.Stdout)
	}
	if strings.TrimSpace(string(out.Stderr)) != "oops" {
		t.Fatalf("unexpected stderr %q", out.Stderr)
	}
}

func TestRunDiscardsOutputWithoutCapture(t *testing.T) {
	script := writeScript(t, "echo", "echo noisy")
	out := Run(context.Background(), Command{Args: []string{script}})
	if len(out.Stdout) != 0 {
		t.Fatalf("expected discarded stdout, got %q", out.Stdout)
	}
}

func TestRunMissingProgram(t *testing.T) {
	out := Run(context.Background(), Command{Args: []string{"clearly-not-present-binary"}})
	if out.Status != StatusNotFound {
		t.Fatalf("expected status %d, got %d", StatusNotFound, out.Status)
	}
	if out.Err == nil {
		t.Fatal("expected error for missing program")
	}

	out = Run(context.Background(), Command{Args: []string{filepath.Join(t.TempDir(), "nope")}})
	if out.Status != StatusNotFound {
		t.Fatalf("expected status %d for missing path, got %d", StatusNotFound, out.Status)
	}
}

func TestRunEmptyCommand(t *testing.T) {
	out := Run(context.Background(), Command{})
	if !errors.Is(out.Err, ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", out.Err)
	}
}

func TestRunHonorsContextDeadline(t *testing.T) {
	script := writeScript(t, "sleep", "exec sleep 5")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	out := Run(ctx, Command{Args: []string{script}})
	if !errors.Is(out.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", out.Err)
	}
	if out.Status != StatusNotStarted {
		t.Fatalf("expected status %d, got %d", StatusNotStarted, out.Status)
	}
}

func TestOutput(t *testing.T) {
	ok := writeScript(t, "ok", "echo value")
	got, err := Output(context.Background(), Command{Args: []string{ok}})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if strings.TrimSpace(got) != "value" {
		t.Fatalf("unexpected output %q", got)
	}

	bad := writeScript(t, "bad", "echo broken >&2; exit 2")
	if _, err := Output(context.Background(), Command{Args: []string{bad}}); err == nil || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("expected error containing stderr, got %v", err)
	}
}

func TestRunTimeoutReleasesCapturedChild(t *testing.T) {
	script := writeScript(t, "slow", "sleep 3\ntrue")
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	started := time.Now()
	out := Run(ctx, Command{Args: []string{script}, Capture: true})
	elapsed := time.Since(started)

	if out.Status != StatusNotStarted || !errors.Is(out.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got status %d err %v", out.Status, out.Err)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("child holding stdout kept Run blocked for %s", elapsed)
	}
}
