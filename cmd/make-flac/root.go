package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"filetools/internal/batch"
	"filetools/internal/cli"
	"filetools/internal/config"
	"filetools/internal/flac"
	"filetools/internal/preflight"
)

func newRootCommand() *cobra.Command {
	var titles string
	return cli.NewCommand(cli.Command{
		Use:   "make-flac",
		Short: "Encode WAV files from cdparanoia to FLAC format",
		Long: `Encode WAV files from cdparanoia to FLAC format.

Tracks are encoded in parallel. Album, artist and song titles come from a text
file (default "titels"): the album title on the first line, the artist on the
second, then one "NN title" line per track. Tracks whose trackNN.cdda.wav is
missing are skipped.`,
		Args:  cobra.NoArgs,
		Batch: true,
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().StringVarP(&titles, "titles", "t", "", "Titles file (default from config, \"titels\")")
		},
		Configure: func(cmd *cobra.Command, cfg *config.Config) error {
			if cmd.Flags().Changed("titles") {
				cfg.Flac.TitlesFile = titles
			}
			return nil
		},
		Run: run,
	})
}

func run(ctx context.Context, env *cli.Env, _ []string) error {
	program := env.Config.Tools.Flac
	if err := preflight.Require(ctx, env.Logger, flac.Requirement(program)); err != nil {
		return err
	}

	titlesFile := env.Config.Flac.TitlesFile
	album, err := flac.ReadTitles(titlesFile)
	if err != nil {
		return err
	}
	tracks, err := flac.Tracks(album, filepath.Dir(titlesFile), env.Logger)
	if err != nil {
		return err
	}

	_, err = cli.RunBatch(ctx, env, cli.BatchJob[flac.Track]{
		Items: tracks,
		Task:  flac.NewTask(program, env.Logger),
		Name:  flac.Track.String,
		Report: func(r batch.Result[flac.Track]) {
			if r.OK() {
				return
			}
			env.Logger.Error(fmt.Sprintf("conversion of %s failed, return code %d", r.Output, r.Status),
				cli.ErrorArgs(r.Err)...)
		},
	})
	return err
}
