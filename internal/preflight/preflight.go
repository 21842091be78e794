package preflight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"

	"filetools/internal/deps"
	"filetools/internal/logging"
)

// ErrMissingDependency marks a required program that is absent or unusable.
var ErrMissingDependency = errors.New("missing dependency")

// MissingDependencyError names the program that failed its check.
type MissingDependencyError struct {
	Program string
	Reason  string
}

func (e *MissingDependencyError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("required program %q not found", e.Program)
	}
	return fmt.Sprintf("required program %q not found: %s", e.Program, e.Reason)
}

func (e *MissingDependencyError) Unwrap() error {
	return ErrMissingDependency
}

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckAvailable runs argv with output discarded and fails unless the program
// exits with expectedStatus.
func CheckAvailable(ctx context.Context, argv []string, expectedStatus int) error {
	req := deps.Requirement{Probe: argv, ExpectedStatus: expectedStatus}
	if len(argv) > 0 {
		req.Name = argv[0]
	}
	return statusError(deps.Check(ctx, req))
}

// Require checks every requirement in order. Each missing program is logged
// and the combined error is returned; nil means all checks passed.
func Require(ctx context.Context, logger *slog.Logger, reqs ...deps.Requirement) error {
	if logger == nil {
		logger = logging.NewNop()
	}
	var errs []error
	for _, status := range deps.CheckBinaries(ctx, reqs) {
		if err := statusError(status); err != nil {
			if status.Optional {
				logger.Warn("optional program unavailable",
					logging.String("program", status.Command),
					logging.String("reason", status.Detail),
				)
				continue
			}
			errs = append(errs, err)
			continue
		}
		logger.Info("found required program", logging.String("program", status.Command))
	}
	return errors.Join(errs...)
}

func statusError(status deps.Status) error {
	if status.Available {
		return nil
	}
	program := status.Command
	if program == "" {
		program = status.Name
	}
	return &MissingDependencyError{Program: program, Reason: status.Detail}
}

// CheckReadable verifies that path is an existing regular file the process may read.
func CheckReadable(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
