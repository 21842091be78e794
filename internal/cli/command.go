package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"filetools/internal/batch"
	"filetools/internal/config"
	"filetools/internal/logging"
)

// Version is stamped at build time with -ldflags "-X filetools/internal/cli.Version=...".
var Version = "dev"

// Env carries everything a command needs once flags and config are resolved.
type Env struct {
	Tool        string
	Config      *config.Config
	ConfigPath  string
	Logger      *slog.Logger
	Workers     int
	TaskTimeout time.Duration
	Summary     bool
	// JournalPath is empty when runs are not journaled.
	JournalPath string
	Stdout      io.Writer
	Stderr      io.Writer
	// Usage prints the command usage to stderr.
	Usage func() error
}

// Command describes one filetools utility.
type Command struct {
	Use     string
	Short   string
	Long    string
	Example string
	Version string
	Args    cobra.PositionalArgs
	// Batch adds --workers, --journal and --summary.
	Batch bool
	// DefaultLogLevel is used when neither --log nor [logging] level is
	// set. Empty selects config.DefaultLogLevel.
	DefaultLogLevel string
	// Flags registers utility-specific flags on the command.
	Flags func(cmd *cobra.Command)
	// Configure applies utility flags to the loaded config before Run.
	Configure func(cmd *cobra.Command, cfg *config.Config) error
	Run       func(ctx context.Context, env *Env, args []string) error
}

type commonFlags struct {
	config     string
	initConfig bool
	logLevel   string
	logFormat  string
	workers    int
	journal    string
	summary    bool
}

// NewCommand builds the cobra root command for a utility.
func NewCommand(def Command) *cobra.Command {
	var flags commonFlags

	version := def.Version
	if version == "" {
		version = Version
	}

	cmd := &cobra.Command{
		Use:           def.Use,
		Short:         def.Short,
		Long:          def.Long,
		Example:       def.Example,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// --init-config runs without the utility's operands.
	cmd.Args = func(cmd *cobra.Command, args []string) error {
		if flags.initConfig || def.Args == nil {
			return nil
		}
		return def.Args(cmd, args)
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	cmd.Flags().StringVar(&flags.logLevel, "log", "", "Log level (debug, info, warning, error)")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Log format (plain, console, json)")
	cmd.Flags().StringVar(&flags.config, "config", "", "Configuration file path")
	cmd.Flags().BoolVar(&flags.initConfig, "init-config", false, "Write a sample configuration file and exit")
	if def.Batch {
		cmd.Flags().IntVarP(&flags.workers, "workers", "j", 0, "Concurrent external programs (default one per CPU)")
		cmd.Flags().StringVar(&flags.journal, "journal", "", "Record the run in the SQLite journal at this path")
		cmd.Flags().BoolVar(&flags.summary, "summary", false, "Print a result table after the batch")
	}
	if def.Flags != nil {
		def.Flags(cmd)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if flags.initConfig {
			return initConfig(cmd.OutOrStdout(), flags.config)
		}
		env, closer, err := newEnv(cmd, def, flags)
		if err != nil {
			return err
		}
		defer closer.Close()
		if def.Run == nil {
			return cmd.Help()
		}
		return def.Run(cmd.Context(), env, args)
	}
	return cmd
}

func newEnv(cmd *cobra.Command, def Command, flags commonFlags) (*Env, io.Closer, error) {
	if flags.logLevel != "" {
		if _, err := logging.ParseLevel(flags.logLevel); err != nil {
			return nil, nil, fmt.Errorf("--log: %w", err)
		}
	}

	cfg, path, _, err := config.Load(strings.TrimSpace(flags.config))
	if err != nil {
		return nil, nil, err
	}

	if def.Batch && cmd.Flags().Changed("workers") {
		cfg.Batch.Workers = flags.workers
	}
	workers, err := batch.ResolveWorkers(cfg.Batch.Workers)
	if err != nil {
		return nil, nil, fmt.Errorf("--workers: %w", err)
	}

	if def.Configure != nil {
		if err := def.Configure(cmd, cfg); err != nil {
			return nil, nil, err
		}
	}

	logger, closer, err := logging.NewFromConfig(cfg.Logging, logLevel(def, flags, cfg), flags.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	tool := cmd.Name()

	journalPath := strings.TrimSpace(flags.journal)
	if journalPath != "" {
		if journalPath, err = config.ExpandPath(journalPath); err != nil {
			_ = closer.Close()
			return nil, nil, fmt.Errorf("--journal: %w", err)
		}
	} else if cfg.Journal.Enabled {
		journalPath = cfg.Journal.Path
	}

	env := &Env{
		Tool:        tool,
		Config:      cfg,
		ConfigPath:  path,
		Logger:      logger,
		Workers:     workers,
		TaskTimeout: time.Duration(cfg.Batch.TaskTimeoutSeconds) * time.Second,
		Summary:     flags.summary,
		JournalPath: journalPath,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		Usage:       cmd.Usage,
	}
	return env, closer, nil
}

// logLevel picks --log, then [logging] level, then the utility default.
func logLevel(def Command, flags commonFlags, cfg *config.Config) string {
	switch {
	case flags.logLevel != "":
		return flags.logLevel
	case cfg.Logging.Level != "":
		return cfg.Logging.Level
	case def.DefaultLogLevel != "":
		return def.DefaultLogLevel
	default:
		return config.DefaultLogLevel
	}
}
