// Package procexec runs a single external program from an argument vector and
// reduces the outcome to an exit status.
package procexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

const (
	// StatusNotFound is reported when the program cannot be located, mirroring
	// the status a POSIX shell uses for an unknown command.
	StatusNotFound = 127
	// StatusNotStarted is reported when the program exists but could not be
	// started or was terminated by a signal.
	StatusNotStarted = -1
)

// waitDelay bounds how long Wait keeps draining captured output after the
// context kills the program. Children that inherited stdout would otherwise
// hold the pipe open until they exit.
const waitDelay = 100 * time.Millisecond

// ErrEmptyCommand is returned for an empty argument vector.
var ErrEmptyCommand = errors.New("empty command")

// Command describes one invocation. Args[0] is the program.
type Command struct {
	Args []string
	Dir  string
	// Capture keeps stdout and stderr; otherwise both are discarded.
	Capture bool
}

// Outcome is the observable result of a finished process.
type Outcome struct {
	Status int
	Stdout []byte
	Stderr []byte
	// Err is set when the process could not be run to a normal exit.
	Err error
}

// OK reports a zero exit status.
func (o Outcome) OK() bool {
	return o.Status == 0 && o.Err == nil
}

// Run executes cmd and waits for it to exit. A non-zero exit status is not an
// error: it is reported in Outcome.Status with Err left nil.
func Run(ctx context.Context, cmd Command) Outcome {
	if len(cmd.Args) == 0 || strings.TrimSpace(cmd.Args[0]) == "" {
		return Outcome{Status: StatusNotStarted, Err: ErrEmptyCommand}
	}

	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	if cmd.Capture {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	err := c.Run()
	out := Outcome{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return out
	}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		out.Status = StatusNotStarted
		out.Err = fmt.Errorf("%s: %w", cmd.Args[0], ctx.Err())
	case errors.As(err, &exitErr):
		out.Status = exitErr.ExitCode()
		if out.Status < 0 {
			out.Status = StatusNotStarted
			out.Err = fmt.Errorf("%s: %w", cmd.Args[0], err)
		}
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		out.Status = StatusNotFound
		out.Err = fmt.Errorf("%s: %w", cmd.Args[0], err)
	default:
		out.Status = StatusNotStarted
		out.Err = fmt.Errorf("%s: %w", cmd.Args[0], err)
	}
	return out
}

// Output runs cmd with capture enabled and returns stdout. It returns an
// error for any failure, including a non-zero exit status.
func Output(ctx context.Context, cmd Command) (string, error) {
	cmd.Capture = true
	out := Run(ctx, cmd)
	if out.Err != nil {
		return "", out.Err
	}
	if out.Status != 0 {
		detail := strings.TrimSpace(string(out.Stderr))
		if detail == "" {
			return "", fmt.Errorf("%s exited with status %d", cmd.Args[0], out.Status)
		}
		return "", fmt.Errorf("%s exited with status %d: %s", cmd.Args[0], out.Status, detail)
	}
	return string(out.Stdout), nil
}
