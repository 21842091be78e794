package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"filetools/internal/batch"
	"filetools/internal/cli"
	"filetools/internal/config"
	"filetools/internal/exif"
	"filetools/internal/preflight"
)

var errNoOwner = errors.New("no copyright owner configured; use --owner or set [markphotos] owner")

func newRootCommand() *cobra.Command {
	var owner string
	return cli.NewCommand(cli.Command{
		Use:   "markphotos file [file ...]",
		Short: "Add a copyright notice to photos",
		Long: `Add a copyright notice to photos.

The year comes from each photo's CreateDate tag, and the file's access and
modification times are reset to that date afterwards.`,
		Args:  cobra.MinimumNArgs(1),
		Batch: true,
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().StringVar(&owner, "owner", "", "Copyright owner (default from config)")
		},
		Configure: func(cmd *cobra.Command, cfg *config.Config) error {
			if cmd.Flags().Changed("owner") {
				cfg.MarkPhotos.Owner = strings.TrimSpace(owner)
			}
			if cfg.MarkPhotos.Owner == "" {
				return errNoOwner
			}
			return nil
		},
		Run: run,
	})
}

func run(ctx context.Context, env *cli.Env, args []string) error {
	program := env.Config.Tools.Exiftool
	if err := preflight.Require(ctx, env.Logger, exif.Requirement(program)); err != nil {
		return err
	}

	_, err := cli.RunBatch(ctx, env, cli.BatchJob[string]{
		Items: args,
		Task:  exif.NewTask(program, env.Config.MarkPhotos.Owner),
		Report: func(r batch.Result[string]) {
			env.Logger.Info(fmt.Sprintf("file %q processed.", r.Item))
			if !r.OK() {
				env.Logger.Error(fmt.Sprintf("error processing %q: %d", r.Item, r.Status), cli.ErrorArgs(r.Err)...)
			}
		},
	})
	return err
}
