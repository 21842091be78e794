// Package deps probes external programs by running them and comparing the
// exit status against an expected value.
package deps

import (
	"context"
	"fmt"
	"strings"

	"filetools/internal/procexec"
)

// Requirement defines an external program a utility relies on. Probe is the
// argument vector used to confirm the program runs; ExpectedStatus is the exit
// status a healthy installation produces for that probe.
type Requirement struct {
	Name           string
	Probe          []string
	ExpectedStatus int
	Description    string
	Optional       bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	ExitStatus  int
	Detail      string
}

// Program returns the program name probed by the requirement.
func (r Requirement) Program() string {
	if len(r.Probe) == 0 {
		return strings.TrimSpace(r.Name)
	}
	return strings.TrimSpace(r.Probe[0])
}

// Check runs a single requirement probe with its output discarded.
func Check(ctx context.Context, req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Command:     req.Program(),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if len(req.Probe) == 0 || status.Command == "" {
		status.Detail = "command not configured"
		return status
	}

	out := procexec.Run(ctx, procexec.Command{Args: req.Probe})
	status.ExitStatus = out.Status
	switch {
	case out.Status == procexec.StatusNotFound && out.Err != nil:
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
	case out.Err != nil:
		status.Detail = out.Err.Error()
	case out.Status != req.ExpectedStatus:
		status.Detail = fmt.Sprintf("exit status %d, expected %d", out.Status, req.ExpectedStatus)
	default:
		status.Available = true
	}
	return status
}

// CheckBinaries evaluates the provided requirements in order and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, Check(ctx, req))
	}
	return results
}
