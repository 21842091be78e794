package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"filetools/internal/logging"
)

// StatusPanic marks an item whose task panicked instead of returning.
const StatusPanic = -1

var (
	ErrInvalidWorkers = errors.New("worker count must be positive")
	ErrNilTask        = errors.New("batch task cannot be nil")
)

// Task processes a single item. Implementations report external-tool failures
// through Result.Status and Result.Err rather than by returning early.
type Task[T any] func(ctx context.Context, item T) Result[T]

// Options controls how a batch is scheduled.
type Options[T any] struct {
	// Workers bounds the number of concurrently running tasks. Zero selects
	// runtime.NumCPU().
	Workers int
	// TaskTimeout bounds each task through its context. Zero disables it.
	TaskTimeout time.Duration
	// OnResult is called once per finished item, never concurrently.
	OnResult func(Result[T])
	Logger   *slog.Logger
}

// DefaultWorkers returns the worker count used when none is configured.
func DefaultWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// ResolveWorkers applies the default to an unset worker count.
func ResolveWorkers(workers int) (int, error) {
	switch {
	case workers < 0:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	case workers == 0:
		return DefaultWorkers(), nil
	default:
		return workers, nil
	}
}

// Run executes task for every item with at most opts.Workers tasks in flight
// and blocks until all of them have finished. The returned slice holds exactly
// one Result per item in completion order.
func Run[T any](ctx context.Context, items []T, task Task[T], opts Options[T]) ([]Result[T], error) {
	if task == nil {
		return nil, ErrNilTask
	}
	workers, err := ResolveWorkers(opts.Workers)
	if err != nil {
		return nil, err
	}
	results := make([]Result[T], 0, len(items))
	if len(items) == 0 {
		return results, nil
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger.Debug("batch started",
		logging.Int("items", len(items)),
		logging.Int("workers", workers),
		logging.Duration("task_timeout", opts.TaskTimeout),
	)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)

	for _, item := range items {
		g.Go(func() error {
			res := runOne(ctx, item, task, opts.TaskTimeout)
			mu.Lock()
			defer mu.Unlock()
			results = append(results, res)
			if opts.OnResult != nil {
				opts.OnResult(res)
			}
			// A failed item must never cancel its siblings.
			return nil
		})
	}
	_ = g.Wait()

	summary := Summarize(results)
	logger.Debug("batch finished",
		logging.Int("total", summary.Total),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
	)
	return results, nil
}

func runOne[T any](ctx context.Context, item T, task Task[T], timeout time.Duration) (res Result[T]) {
	taskCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Item: item, Status: StatusPanic, Err: fmt.Errorf("task panicked: %v", r)}
		}
		res.Elapsed = time.Since(started)
	}()

	res = task(taskCtx, item)
	res.Item = item
	return res
}
