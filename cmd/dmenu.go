package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/tofi/internal/config"
	"github.com/rnwolfe/tofi/internal/handoff"
	"github.com/rnwolfe/tofi/internal/mode"
	"github.com/rnwolfe/tofi/internal/tui"
	"github.com/rnwolfe/tofi/internal/ui"
)

var (
	dmenuFlags    launchFlags
	dmenuEncoding string
)

var dmenuCmd = &cobra.Command{
	Use:   "dmenu",
	Short: "Pick one line of stdin and print it",
	Long: `Read newline-separated candidates from stdin, pick one and print it to stdout.

The picker talks to the terminal directly, so tofi dmenu works in the
middle of a pipeline:

  ls | tofi dmenu | xargs cat

Spaces in the printed line are escaped as "\ ". Cancelling prints nothing
and exits 1.`,
	Args: cobra.NoArgs,
	RunE: runDmenu,
}

var errStdinIsTerminal = errors.New("dmenu reads candidates from stdin; pipe something into it")

func init() {
	addLaunchFlags(dmenuCmd.Flags(), &dmenuFlags)
	dmenuCmd.Flags().StringVar(&dmenuEncoding, "encoding", "", "Encoding of the input (utf-8, latin1, shift_jis, ...)")
}

func runDmenu(cmd *cobra.Command, _ []string) error {
	if ui.IsStdinTTY() {
		return errStdinIsTerminal
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := loggerFor(cmd)

	label := cfg.Dmenu.Encoding
	if cmd.Flags().Changed("encoding") {
		label = dmenuEncoding
	}
	decode, err := mode.DecoderFor(label)
	if err != nil {
		return err
	}

	device := cfg.Terminal.Device
	if device == "" {
		device = handoff.DefaultDevice
	}

	m, err := mode.NewPipe(os.Stdin,
		mode.WithDecoder(decode),
		mode.WithTerminal(mode.AttachTerminal(handoff.WithDevice(device))),
		mode.WithPipeLogger(log),
	)
	if err != nil {
		return modeError("dmenu", err)
	}
	log.V(1).Info("read candidates", "count", m.Len(), "encoding", label)

	// The picker draws through its own handle on the terminal, so it never
	// writes through the output slot while a selection goes downstream.
	tty, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		m.Close()
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer tty.Close()

	opts := pickerOptions(cmd.Flags(), dmenuFlags, cfg, log)
	opts = append(opts, tui.WithTTY(tty))
	return newLauncher(cfg, log).run(m, opts...)
}
