package main

import (
	"context"

	"github.com/spf13/cobra"

	"filetools/internal/cli"
	"filetools/internal/config"
	"filetools/internal/otp"
)

func newRootCommand() *cobra.Command {
	var layout otp.Layout
	return cli.NewCommand(cli.Command{
		Use:   "genotp",
		Short: "Generate an old-fashioned one-time pad",
		Long: `Generate an old-fashioned one-time pad: by default 65 lines of 12 groups
of 5 random capital letters, drawn from the operating system's secure
random source.`,
		Args: cobra.NoArgs,
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().IntVar(&layout.Lines, "lines", 0, "Number of lines (default from config, 65)")
			cmd.Flags().IntVar(&layout.Groups, "groups", 0, "Groups per line (default from config, 12)")
			cmd.Flags().IntVar(&layout.GroupSize, "size", 0, "Letters per group (default from config, 5)")
		},
		Configure: func(cmd *cobra.Command, cfg *config.Config) error {
			if cmd.Flags().Changed("lines") {
				cfg.OTP.Lines = layout.Lines
			}
			if cmd.Flags().Changed("groups") {
				cfg.OTP.Groups = layout.Groups
			}
			if cmd.Flags().Changed("size") {
				cfg.OTP.GroupSize = layout.GroupSize
			}
			return nil
		},
		Run: run,
	})
}

func run(_ context.Context, env *cli.Env, _ []string) error {
	layout := otp.Layout{
		Lines:     env.Config.OTP.Lines,
		Groups:    env.Config.OTP.Groups,
		GroupSize: env.Config.OTP.GroupSize,
	}
	return otp.Write(env.Stdout, otp.NewGenerator(nil), layout)
}
