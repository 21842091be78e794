package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"filetools/internal/batch"
	"filetools/internal/cli"
	"filetools/internal/config"
	"filetools/internal/dicom"
	"filetools/internal/preflight"
)

const stampLayout = "2006-01-02 15:04:05"

func newRootCommand() *cobra.Command {
	var (
		quality int
		level   bool
	)
	return cli.NewCommand(cli.Command{
		Use:   "dicom2png [file ...]",
		Short: "Convert DICOM files from an X-ray machine to PNG format",
		Long: `Convert DICOM files from an X-ray machine to PNG format.

During the conversion blank areas are removed. The crop is based on the image
size of a Philips flat detector: frames go from 2048x2048 to 1574x2048 pixels.`,
		Batch: true,
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().IntVarP(&quality, "quality", "q", 80, "PNG quality level")
			cmd.Flags().BoolVarP(&level, "level", "l", false, "Correct color levels")
		},
		Configure: func(cmd *cobra.Command, cfg *config.Config) error {
			if cmd.Flags().Changed("quality") {
				cfg.Dicom.Quality = quality
			}
			if cmd.Flags().Changed("level") {
				cfg.Dicom.Level = level
			}
			return cfg.Validate()
		},
		Run: run,
	})
}

func run(ctx context.Context, env *cli.Env, args []string) error {
	opts := dicom.OptionsFromConfig(env.Config)
	if err := preflight.Require(ctx, env.Logger, dicom.Requirement(opts)); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoInput
	}
	if opts.Quality != config.Default().Dicom.Quality {
		env.Logger.Info(fmt.Sprintf("quality set to %d", opts.Quality))
	}
	if opts.Level {
		env.Logger.Info("applying level correction.")
	}

	env.Logger.Info(fmt.Sprintf("started at %s.", time.Now().Format(stampLayout)))
	_, err := cli.RunBatch(ctx, env, cli.BatchJob[string]{
		Items: args,
		Task:  dicom.NewTask(opts),
		Report: func(r batch.Result[string]) {
			if r.OK() {
				env.Logger.Info(fmt.Sprintf("finished conversion of %s to %s (returned %d)", r.Item, r.Output, r.Status))
				return
			}
			env.Logger.Error(fmt.Sprintf("conversion of %s to %s failed (returned %d)", r.Item, r.Output, r.Status),
				cli.ErrorArgs(r.Err)...)
		},
	})
	if err != nil {
		return err
	}
	env.Logger.Info(fmt.Sprintf("completed at %s.", time.Now().Format(stampLayout)))
	return nil
}
