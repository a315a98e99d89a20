package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/odvcencio/persistui/pkg/config"
	"github.com/odvcencio/persistui/pkg/errors"
	"github.com/odvcencio/persistui/pkg/logging"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

// isInteractiveFn allows tests to stub TTY detection.
var isInteractiveFn = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "persistui",
		Short:         "persistui composes terminal widgets and sequences their events",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a config file (default: layered ~/.persistui and ./.persistui)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override logging.level")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newEventsCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFromPath(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, withExitCode(err, exitConfig)
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, withExitCode(err, exitConfig)
		}
	}
	return cfg, nil
}

// newLogger opens the configured log file. Interactive commands never log
// to the terminal they draw on, so an empty file disables logging.
func newLogger(cfg *config.Config, component string) (*logging.Logger, func(), error) {
	path := cfg.LogFilePath()
	if path == "" {
		return logging.Nop(), func() {}, nil
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "open log file")
	}
	log, err := logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Writer:    f,
		Component: component,
	})
	if err != nil {
		_ = f.Close()
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "configure logger")
	}
	return log, func() { _ = f.Close() }, nil
}

func requireTerminal(command string) error {
	if isInteractiveFn() {
		return nil
	}
	return withExitCode(
		errors.New(errors.ErrCodeInvalidInput, command+" needs an interactive terminal").
			WithRemediation("Run persistui from a terminal, not a pipe or CI job."),
		exitNoTTY,
	)
}
