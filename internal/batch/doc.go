// Package batch runs independent, subprocess-backed tasks across a bounded
// worker pool and collects one Result per submitted item.
//
// Run never aborts a batch because one item failed: a non-zero exit status, a
// missing program or even a panicking task is recorded on that item's Result
// and the remaining items keep running. Results are returned once every task
// has finished, in completion order; callers correlate them through
// Result.Item.
//
// The worker count defaults to runtime.NumCPU(). Tasks run without a deadline
// unless Options.TaskTimeout is set, so a hung external program holds its
// worker slot until it exits.
package batch
