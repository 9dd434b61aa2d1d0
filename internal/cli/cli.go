// Package cli implements the phaseflow command-line interface.
//
// # Commands
//
//   - unwrap: read a wrapped phase grid (CSV), unwrap it, write the result
//   - wrap:   fold a grid into (−π, π], handy for building inputs and
//     checking round trips
//
// Grids are CSV files with one row of comma-separated floats per line;
// "-" (or an empty path) means stdin/stdout. Solver settings come from an
// optional TOML file (--config) and are overridden by explicit flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried through context.Context and handed to the unwrap engine.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version, set via ldflags
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the command tree. Logs go to the command's stderr.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "phaseflow",
		Short:        "phaseflow unwraps interferometric phase with minimum-cost flow",
		Long:         `phaseflow recovers absolute phase from a wrapped phase grid using the Costantini minimum-cost-flow formulation.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("phaseflow %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newUnwrapCmd())
	root.AddCommand(newWrapCmd())

	return root
}

// Execute runs the CLI until ctx is canceled or the command returns.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
