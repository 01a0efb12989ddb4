package main

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-almanac/internal/config"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "almanac",
		Short: "Translate seeds through a chain of range maps",
		Long: `almanac reads a document made of seeds and named stages of range rules, then translates
the seeds, as single values or as (start, length) ranges, through every stage and reports the
smallest final value.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML run configuration")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text, json")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newSolveCmd(opts))
	cmd.AddCommand(newTraceCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// loadConfig reads the configuration file, if any, and applies the flags set on the command line
// on top of it.
func (o *rootOptions) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if cfg.Input == "" {
		return nil, errors.New("no input file, pass one as argument or set input in the config")
	}

	return cfg, nil
}

func (o *rootOptions) logger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return cfg.Logger(cmd.ErrOrStderr())
}
