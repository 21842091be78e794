package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"filetools/internal/batch"
	"filetools/internal/journal"
	"filetools/internal/logging"
	"filetools/internal/preflight"
)

// BatchJob describes one batch invocation of a utility.
type BatchJob[T any] struct {
	Items []T
	Task  batch.Task[T]
	// Name renders an item for logs, the journal, and the summary table.
	Name func(T) string
	// Report is called once per finished item, serialized.
	Report func(batch.Result[T])
}

// RunBatch executes job with the worker settings from env, then journals the
// run and prints the summary table when requested. Item failures never make
// it return an error.
func RunBatch[T any](ctx context.Context, env *Env, job BatchJob[T]) ([]batch.Result[T], error) {
	name := job.Name
	if name == nil {
		name = func(item T) string { return fmt.Sprint(item) }
	}

	started := time.Now()
	results, err := batch.Run(ctx, job.Items, job.Task, batch.Options[T]{
		Workers:     env.Workers,
		TaskTimeout: env.TaskTimeout,
		OnResult:    job.Report,
		Logger:      env.Logger,
	})
	if err != nil {
		return nil, err
	}
	finished := time.Now()

	summary := batch.Summarize(results)
	env.Logger.Debug("batch finished",
		logging.Int("total", summary.Total),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", finished.Sub(started)),
	)

	if env.JournalPath != "" {
		recordRun(ctx, env, journal.Run{
			Tool:       env.Tool,
			StartedAt:  started,
			FinishedAt: finished,
			Workers:    env.Workers,
			Total:      summary.Total,
			Failed:     summary.Failed,
		}, Entries(results, name))
	}
	if env.Summary {
		WriteSummary(env.Stdout, results, name)
	}
	return results, nil
}

// recordRun writes the run to the journal. Failures are only logged.
func recordRun(ctx context.Context, env *Env, run journal.Run, entries []journal.Entry) {
	logger := logging.NewComponentLogger(env.Logger, "journal")
	if dir := filepath.Dir(env.JournalPath); dirExists(dir) {
		if check := preflight.CheckDirectoryAccess("journal directory", dir); !check.Passed {
			logger.Warn("unavailable", logging.String("reason", check.Detail))
			return
		}
	}
	timeout := time.Duration(env.Config.Journal.LockTimeoutSeconds) * time.Second
	store, err := journal.Open(ctx, env.JournalPath, timeout)
	if err != nil {
		logger.Warn("unavailable", logging.String("path", env.JournalPath), logging.Error(err))
		return
	}
	defer store.Close()

	id, err := store.Record(ctx, run, entries)
	if err != nil {
		logger.Warn("record failed", logging.String("path", env.JournalPath), logging.Error(err))
		return
	}
	logger.Info("run recorded", logging.String(logging.FieldRunID, id), logging.String("path", store.Path()))
}

// dirExists reports whether path is present. A missing directory is created
// by journal.Open.
func dirExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Entries converts batch results to journal entries.
func Entries[T any](results []batch.Result[T], name func(T) string) []journal.Entry {
	entries := make([]journal.Entry, 0, len(results))
	for _, r := range results {
		e := journal.Entry{
			Item:    name(r.Item),
			Output:  r.Output,
			Status:  r.Status,
			Elapsed: r.Elapsed,
		}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		entries = append(entries, e)
	}
	return entries
}

// WriteSummary prints a result table followed by a totals line.
func WriteSummary[T any](w io.Writer, results []batch.Result[T], name func(T) string) {
	colorize := shouldColorize(w)
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			name(r.Item),
			r.Output,
			colorStatus(strconv.Itoa(r.Status), r.OK(), colorize),
		})
	}
	summary := batch.Summarize(results)
	fmt.Fprintln(w, RenderTable([]string{"Item", "Output", "Status"}, rows, 2))
	fmt.Fprintf(w, "%d processed, %d succeeded, %d failed\n", summary.Total, summary.Succeeded, summary.Failed)
}

// ErrorArgs returns the error attribute for err, or nothing when err is nil.
func ErrorArgs(err error) []any {
	if err == nil {
		return nil
	}
	return []any{logging.Error(err)}
}
