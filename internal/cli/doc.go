// Package cli holds the plumbing shared by the filetools commands: the cobra
// root with common flags, config and logger setup, the batch wrapper that
// records runs and prints summaries, and the process entry point.
package cli
