package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/tofi/internal/history"
	"github.com/rnwolfe/tofi/internal/mode"
	"github.com/rnwolfe/tofi/internal/store"
	"github.com/rnwolfe/tofi/internal/ui"
)

var (
	historyLimit int
	historyMode  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent selections",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", history.DefaultLimit, "Number of entries to show")
	historyCmd.Flags().StringVar(&historyMode, "mode", "", "Only show one mode (run, dmenu)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	switch historyMode {
	case "", "run", "dmenu":
	default:
		return fmt.Errorf("unknown mode %q (use run or dmenu)", historyMode)
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	launches, err := history.NewStore(db.Conn()).Recent(historyLimit, historyMode)
	if err != nil {
		return err
	}

	if len(launches) == 0 {
		fmt.Println(ui.Muted.Render("  Nothing launched yet."))
		return nil
	}

	for _, l := range launches {
		fmt.Println(formatLaunch(l))
	}
	return nil
}

func formatLaunch(l history.Launch) string {
	when := l.CreatedAt.Local().Format("2006-01-02 15:04")
	sel := l.Selection
	if l.Outcome == mode.CloseFailure.String() {
		sel = ui.Error.Render(sel + " (failed)")
	}
	return fmt.Sprintf("  %s %s %-5s %s %s",
		ui.Muted.Render(when), ui.Muted.Render(ui.IconDot), l.Mode, ui.Muted.Render(ui.IconArrow), sel)
}
