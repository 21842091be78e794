package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"filetools/internal/cli"
	"filetools/internal/logging"
	"filetools/internal/rename"
)

func newRootCommand() *cobra.Command {
	var opts rename.Options
	return cli.NewCommand(cli.Command{
		Use:   "nospaces [file ...]",
		Short: "Change whitespace in file names to underscores",
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().BoolVar(&opts.NFC, "nfc", false, "Normalize names to Unicode NFC before renaming")
		},
		Run: func(ctx context.Context, env *cli.Env, args []string) error {
			if len(args) == 0 {
				fmt.Fprintf(env.Stderr, "%s version %s\n", env.Tool, cli.Version)
				return env.Usage()
			}
			return run(ctx, env, args, opts)
		},
	})
}

func run(_ context.Context, env *cli.Env, args []string, opts rename.Options) error {
	for _, name := range args {
		target, changed, err := rename.Rename(name, opts)
		if err != nil {
			fmt.Fprintf(env.Stdout, "Renaming %q failed: %s\n", name, reason(err))
			continue
		}
		if changed {
			env.Logger.Info("renamed", logging.String(logging.FieldInput, name), logging.String(logging.FieldOutput, target))
		}
	}
	return nil
}

func reason(err error) string {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err.Error()
	}
	return err.Error()
}
