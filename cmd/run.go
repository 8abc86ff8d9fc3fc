package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/tofi/internal/config"
	"github.com/rnwolfe/tofi/internal/mode"
	"github.com/rnwolfe/tofi/internal/tui"
	"github.com/rnwolfe/tofi/internal/ui"
)

var runFlags launchFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Pick a program from $PATH and launch it",
	Long: `Pick a program from the directories in $PATH and launch it detached.

The list loads in the background while you type. Words after the program
name are passed to it as arguments; press tab to complete the highlighted
program first.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	addLaunchFlags(runCmd.Flags(), &runFlags)
}

var errNoTerminal = errors.New("run needs a terminal on stdin and stdout; use tofi dmenu to pick from a pipe")

// requireTerminal fails unless both standard streams are terminals.
func requireTerminal(stdinTTY, stdoutTTY bool) error {
	if !stdinTTY || !stdoutTTY {
		return errNoTerminal
	}
	return nil
}

func runRun(cmd *cobra.Command, _ []string) error {
	if err := requireTerminal(ui.IsStdinTTY(), ui.IsStdoutTTY()); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := loggerFor(cmd)

	m := mode.NewPath(mode.WithPathLogger(log))

	opts := pickerOptions(cmd.Flags(), runFlags, cfg, log)
	opts = append(opts, tui.WithArguments())
	return newLauncher(cfg, log).run(m, opts...)
}
