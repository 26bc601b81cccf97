// Package cli implements the osfind command line.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ning0612/osfind/internal/config"
	"github.com/Ning0612/osfind/internal/domain"
	"github.com/Ning0612/osfind/internal/finder"
	"github.com/Ning0612/osfind/internal/logger"
	"github.com/Ning0612/osfind/internal/output"
	"github.com/Ning0612/osfind/internal/progress"
)

// ErrNoDirectory is returned when no DIRECTORY argument was given.
var ErrNoDirectory = errors.New("a DIRECTORY argument is required")

// Options holds everything parsed from the command line.
type Options struct {
	Filters domain.FilterSet
	Exec    string

	ConfigFile string
	LogLevel   string
	LogFormat  string
	Verbose    bool
}

// NewRootCommand creates the osfind command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(output.ProcessExecutor{})
}

func newRootCommand(executor output.Executor) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "osfind [OPTIONS] DIRECTORY",
		Short: "Find regular files by inode, name, size and link count",
		Long: `osfind walks DIRECTORY depth-first and lists every regular file that
passes all of the given predicates, one path per line. Directories,
symbolic links and special files are never listed, and symbolic links
are not followed. With -exec the matching paths are handed to PROGRAM
instead of being printed.

Options may be written find-style with one dash (-name a.txt) or with
two dashes (--name a.txt). Each option may be given once.`,
		Example: `  osfind -name notes.txt ~/docs
  osfind -size +1048576 -nlinks 1 /var/log
  osfind -size -0 -exec /bin/rm /tmp/scratch`,
		Args:          directoryArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], executor)
		},
	}

	flags := cmd.Flags()
	registerPredicates(flags, opts)
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default: osfind.yaml in ., $XDG_CONFIG_HOME/osfind, ~/.config/osfind)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error (default warn)")
	flags.StringVar(&opts.LogFormat, "log-format", "", "log format: text or json (default text)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log a traversal summary")

	return cmd
}

func directoryArg(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		_ = cmd.Usage()
		return ErrNoDirectory
	case len(args) > 1:
		return fmt.Errorf("%w: only one directory can be specified", domain.ErrDuplicateOption)
	}
	return nil
}

func run(cmd *cobra.Command, opts *Options, root string, executor output.Executor) error {
	if err := opts.Filters.Validate(); err != nil {
		return err
	}

	cfg, err := config.Load(opts.ConfigFile, cmd.Flags())
	if err != nil {
		return err
	}
	if opts.Verbose {
		raiseToInfo(cfg)
	}

	logCfg, err := cfg.LoggerConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := logger.Init(logCfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Shutdown()

	log := logger.Get()
	log.Debug("starting search", "root", root, "filters", fmt.Sprintf("%+v", opts.Filters))

	reporter := progress.NewCallbackReporter(func(u progress.Update) {
		if u.Type == progress.UpdateEnterDir {
			log.Debug("entering directory", "path", u.Path)
		}
	})

	results, err := finder.Find(root, opts.Filters, finder.WithReporter(reporter))
	if err != nil {
		// the root could not be opened: reported once, nothing printed or executed
		finder.LogError(err)
		return nil
	}

	stats := reporter.Stats()
	log.Info("search complete",
		"directories", stats.Directories,
		"entries", stats.Entries(),
		"files", stats.Files,
		"others", stats.Others,
		"matches", stats.Matches,
		"errors", stats.Errors,
		"elapsed", stats.Elapsed,
	)

	if opts.Exec == "" {
		if err := output.Print(cmd.OutOrStdout(), results); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		return nil
	}

	log.Debug("handing off to program", "program", opts.Exec, "paths", results.Len())
	_ = logger.Sync()
	if err := executor.Exec(opts.Exec, results.Paths()); err != nil {
		finder.LogError(err)
	}
	return nil
}

// raiseToInfo lowers the configured threshold to info so the summary shows.
func raiseToInfo(cfg *config.Config) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err == nil && level > logger.LevelInfo {
		cfg.Log.Level = logger.LevelInfo.String()
	}
}
