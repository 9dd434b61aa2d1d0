package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/phaseflow/grid"
)

// newWrapCmd creates the wrap command, which folds every value into (−π, π].
func newWrapCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "wrap",
		Short: "Wrap a phase grid (CSV) into (−π, π]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readGridFile(in, cmd.InOrStdin())
			if err != nil {
				return err
			}
			g, err := grid.New(rows)
			if err != nil {
				return err
			}
			if err := writeGridFile(out, cmd.OutOrStdout(), grid.Rewrap(g).Slices()); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("wrapped", "rows", g.Rows(), "cols", g.Cols())

			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "-", "input CSV grid (- for stdin)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output CSV grid (- for stdout)")

	return cmd
}
