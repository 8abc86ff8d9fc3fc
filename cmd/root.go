package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/rnwolfe/tofi/internal/config"
	"github.com/rnwolfe/tofi/internal/logging"
	"github.com/rnwolfe/tofi/internal/ui"
)

var (
	logLevel string
	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "tofi",
	Short: "A tiny fuzzy launcher for the terminal",
	Long: `tofi picks one thing from a list as you type.

With no subcommand it behaves like "tofi run": pick a program from $PATH and
launch it. "tofi dmenu" reads candidates from stdin and prints the choice.`,
	PersistentPreRunE: setupLogging,
	RunE:              runRun,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError ends the process with code without printing anything.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()
	closeLog()
	os.Exit(exitCode(err))
}

// exitCode maps a command error to a process exit status, printing the
// error first unless it only carries a status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	ui.Err(err.Error())
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	addLaunchFlags(rootCmd.Flags(), &runFlags)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(dmenuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging opens the log file and stores the logger in the command
// context. Failing to open it never stops the command.
func setupLogging(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	name := cfg.Log.Level
	if logLevel != "" {
		name = logLevel
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return err
	}

	log, closer, err := logging.Open(config.GetPaths().StateDir, level)
	if err != nil {
		ui.Warn(fmt.Sprintf("logging disabled: %v", err))
	}
	closeLog = closer

	log = log.WithValues("command", cmd.Name())
	cmd.SetContext(logging.WithLogger(cmd.Context(), log))
	return nil
}

// loggerFor returns the logger set up for cmd.
func loggerFor(cmd *cobra.Command) logr.Logger {
	if cmd == nil || cmd.Context() == nil {
		return logr.Discard()
	}
	return logging.FromContext(cmd.Context())
}
