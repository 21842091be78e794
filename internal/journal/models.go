package journal

import "time"

// Run summarizes one batch invocation.
type Run struct {
	ID         string
	Tool       string
	StartedAt  time.Time
	FinishedAt time.Time
	Workers    int
	Total      int
	Failed     int
}

// Entry is the recorded outcome of one item within a run.
type Entry struct {
	RunID   string
	Item    string
	Output  string
	Status  int
	Error   string
	Elapsed time.Duration
}

// Failed reports whether the item exited non-zero or carried an error, the
// same rule as batch.Result.OK.
func (e Entry) Failed() bool {
	return e.Status != 0 || e.Error != ""
}

// Succeeded returns the number of items in the run that did not fail.
func (r Run) Succeeded() int {
	return r.Total - r.Failed
}

// Duration returns the wall-clock length of the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
