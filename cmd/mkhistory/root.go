package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"filetools/internal/cli"
	"filetools/internal/gitlog"
)

func newRootCommand() *cobra.Command {
	return cli.NewCommand(cli.Command{
		Use:   "mkhistory outputfile",
		Short: "Format a Git log for LaTeX",
		Long: `Format the one-line Git log of the current repository for LaTeX.

Use "-" as the output file to write to standard output.`,
		Args: cobra.MaximumNArgs(1),
		Run:  run,
	})
}

func run(ctx context.Context, env *cli.Env, args []string) error {
	if len(args) == 0 {
		return env.Usage()
	}

	log, err := gitlog.Log(ctx, env.Config.Tools.Git, "")
	if err != nil {
		return fmt.Errorf("git not found: %w", err)
	}

	if args[0] == "-" {
		return gitlog.Write(env.Stdout, log)
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := gitlog.Write(f, log); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
