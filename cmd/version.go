package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/tofi/internal/config"
	"github.com/rnwolfe/tofi/internal/version"
)

var versionFlags struct {
	short   bool
	verbose bool
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tofi version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.BoolVar(&versionFlags.short, "short", false, "Print only the version number")
	f.BoolVarP(&versionFlags.verbose, "verbose", "v", false, "Also print the Go runtime and the files tofi uses")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if versionFlags.short {
		_, err := fmt.Fprintln(w, version.Short())
		return err
	}

	fmt.Fprintf(w, "tofi %s\n", version.Full())
	if !versionFlags.verbose {
		return nil
	}
	paths := config.GetPaths()
	_, err := fmt.Fprintf(w, "go:      %s %s/%s\nconfig:  %s\nhistory: %s\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH, paths.ConfigFile, paths.DBFile)
	return err
}
