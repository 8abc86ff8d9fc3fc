package cmd

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/rnwolfe/tofi/internal/config"
	"github.com/rnwolfe/tofi/internal/history"
	"github.com/rnwolfe/tofi/internal/mode"
	"github.com/rnwolfe/tofi/internal/store"
	"github.com/rnwolfe/tofi/internal/tui"
)

// launchFlags are the renderer flags shared by run and dmenu.
type launchFlags struct {
	prompt string
	height int
}

func addLaunchFlags(fs *pflag.FlagSet, lf *launchFlags) {
	fs.StringVarP(&lf.prompt, "prompt", "p", config.DefaultPrompt, "Prompt shown before the query")
	fs.IntVar(&lf.height, "height", config.DefaultHeight, "Visible result rows (0 fills the terminal)")
}

// pickerOptions builds renderer options from config, with flags that were
// set explicitly taking precedence.
func pickerOptions(fs *pflag.FlagSet, lf launchFlags, cfg *config.Config, log logr.Logger) []tui.PickerOption {
	prompt, height := cfg.UI.Prompt, cfg.UI.Height
	if fs.Changed("prompt") {
		prompt = lf.prompt
	}
	if fs.Changed("height") {
		height = lf.height
	}
	return []tui.PickerOption{
		tui.WithPrompt(prompt),
		tui.WithHeight(height),
		tui.WithLogger(log),
	}
}

// pickFunc runs a renderer over a mode.
type pickFunc func(m mode.Mode, opts ...tui.PickerOption) (tui.Session, error)

// launcher runs one session and turns its end into an exit status.
type launcher struct {
	pick    pickFunc
	log     logr.Logger
	history bool
}

func newLauncher(cfg *config.Config, log logr.Logger) *launcher {
	return &launcher{pick: tui.Run, log: log, history: cfg.History.IsEnabled()}
}

// run drives m until the session ends and closes m on every path.
// A canceled session or a failed selection yields an exitError.
func (l *launcher) run(m mode.Mode, opts ...tui.PickerOption) (err error) {
	defer func() {
		if cerr := m.Close(); cerr != nil {
			l.log.Error(cerr, "closing mode", "mode", m.Name())
			if err == nil || isExitError(err) {
				err = cerr
			}
		}
	}()

	session, err := l.pick(m, opts...)
	if errors.Is(err, tui.ErrCanceled) {
		l.log.V(1).Info("session canceled", "mode", m.Name())
		return &exitError{code: 1}
	}
	if err != nil {
		return err
	}

	l.log.Info("session finished", "mode", m.Name(), "selection", session.Selection, "outcome", session.Outcome.String())
	l.record(m.Name(), session)

	if session.Outcome == mode.CloseFailure {
		return &exitError{code: 1}
	}
	return nil
}

// record writes the finished session to the history store. Failures are
// logged and otherwise ignored.
func (l *launcher) record(modeName string, s tui.Session) {
	if !l.history {
		return
	}
	db, err := store.Open()
	if err != nil {
		l.log.Error(err, "opening history store")
		return
	}
	defer db.Close()

	launch := history.Launch{
		Session:   history.NewSession(),
		Mode:      modeName,
		Selection: s.Selection,
		Outcome:   s.Outcome.String(),
	}
	if _, err := history.NewStore(db.Conn()).Record(launch); err != nil {
		l.log.Error(err, "recording launch")
	}
}

func isExitError(err error) bool {
	var ee *exitError
	return errors.As(err, &ee)
}

func modeError(name string, err error) error {
	return fmt.Errorf("%s: %w", name, err)
}
