package main

import (
	"context"

	"github.com/spf13/cobra"

	"filetools/internal/cli"
	"filetools/internal/pdf"
	"filetools/internal/preflight"
)

func newRootCommand() *cobra.Command {
	return cli.NewCommand(cli.Command{
		Use:   "fix-pdftitle file [file ...]",
		Short: "Fix PDF file titles",
		Long: `Fix PDF file titles.

Decrypt PDF files where needed and set the document title to match the file
name, so reader apps that show the title display something sensible.

Each changed title is logged at info, which is this tool's default level.`,
		Args:            cobra.MinimumNArgs(1),
		Batch:           true,
		DefaultLogLevel: "info",
		Run:             run,
	})
}

func run(ctx context.Context, env *cli.Env, args []string) error {
	tools := pdf.ToolsFromConfig(env.Config)
	if err := preflight.Require(ctx, env.Logger, pdf.Requirements(tools)...); err != nil {
		return err
	}

	fixer := &pdf.Fixer{Tools: tools, Logger: env.Logger}
	_, err := cli.RunBatch(ctx, env, cli.BatchJob[string]{
		Items: args,
		Task:  fixer.Task(),
	})
	return err
}
