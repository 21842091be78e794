package batch

import "time"

// StatusSuccess is the status an external program reports on success.
const StatusSuccess = 0

// Result is the outcome of processing one work item.
type Result[T any] struct {
	Item    T
	Output  string
	Status  int
	Err     error
	Elapsed time.Duration
}

// OK reports whether the task finished with a zero status and no error.
func (r Result[T]) OK() bool {
	return r.Status == StatusSuccess && r.Err == nil
}

// Summary aggregates a completed batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize counts successes and failures across results.
func Summarize[T any](results []Result[T]) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.OK() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// Failures returns the results that did not succeed, preserving order.
func Failures[T any](results []Result[T]) []Result[T] {
	var out []Result[T]
	for _, r := range results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}
