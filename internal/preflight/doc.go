// Package preflight verifies that the external programs a utility wraps are
// present before any batch work starts.
//
// A failed check is fatal: the command prints the diagnostic and exits with
// status 1 without touching a single input. The same package also carries the
// filesystem access probes used to pick readable inputs.
package preflight
