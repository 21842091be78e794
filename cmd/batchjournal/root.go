package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"filetools/internal/cli"
	"filetools/internal/config"
	"filetools/internal/journal"
	"filetools/internal/preflight"
)

type listOptions struct {
	path  string
	tool  string
	limit int
}

func newRootCommand() *cobra.Command {
	var opts listOptions
	return cli.NewCommand(cli.Command{
		Use:   "batchjournal [run-id]",
		Short: "Show batch runs recorded in the filetools journal",
		Long: `Show batch runs recorded in the filetools journal.

Without arguments the most recent runs are listed. Given a run id, the items
processed in that run are listed with their status.`,
		Example: `  batchjournal --tool dicom2png --limit 5
  batchjournal 3f1c0d2e-8a4b-4c55-9d7e-2b1f6a9c0e11`,
		Args: cobra.MaximumNArgs(1),
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().StringVar(&opts.path, "journal", "", "Journal database path (default from config)")
			cmd.Flags().StringVar(&opts.tool, "tool", "", "Only list runs of this tool")
			cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "Maximum number of runs to list")
		},
		Configure: func(_ *cobra.Command, cfg *config.Config) error {
			if strings.TrimSpace(opts.path) == "" {
				return nil
			}
			path, err := config.ExpandPath(strings.TrimSpace(opts.path))
			if err != nil {
				return fmt.Errorf("--journal: %w", err)
			}
			cfg.Journal.Path = path
			return nil
		},
		Run: func(ctx context.Context, env *cli.Env, args []string) error {
			return run(ctx, env, args, opts)
		},
	})
}

func run(ctx context.Context, env *cli.Env, args []string, opts listOptions) error {
	path := env.Config.Journal.Path
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no journal at %s", path)
		}
		return err
	}
	if check := preflight.CheckDirectoryAccess("journal directory", filepath.Dir(path)); !check.Passed {
		return fmt.Errorf("journal directory: %s", check.Detail)
	}

	store, err := journal.Open(ctx, path, 0)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		return showRun(ctx, env, store, args[0])
	}
	return listRuns(ctx, env, store, opts)
}

func listRuns(ctx context.Context, env *cli.Env, store *journal.Store, opts listOptions) error {
	runs, err := store.Recent(ctx, opts.tool, opts.limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(env.Stdout, "No runs recorded.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.Tool,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(r.Workers),
			strconv.Itoa(r.Total),
			strconv.Itoa(r.Failed),
			r.Duration().Round(time.Millisecond).String(),
		})
	}
	fmt.Fprintln(env.Stdout, cli.RenderTable(
		[]string{"Run", "Tool", "Started", "Workers", "Total", "Failed", "Duration"},
		rows, 3, 4, 5, 6,
	))
	return nil
}

func showRun(ctx context.Context, env *cli.Env, store *journal.Store, runID string) error {
	entries, err := store.Entries(ctx, runID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries recorded for run %s", runID)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Item,
			e.Output,
			strconv.Itoa(e.Status),
			e.Elapsed.String(),
			e.Error,
		})
	}
	fmt.Fprintln(env.Stdout, cli.RenderTable([]string{"Item", "Output", "Status", "Elapsed", "Error"}, rows, 2, 3))
	return nil
}
