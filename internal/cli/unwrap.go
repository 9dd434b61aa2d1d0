package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/phaseflow/unwrap"
)

// unwrapOpts holds the command-line flags for the unwrap command.
type unwrapOpts struct {
	in, out       string
	config        string
	mode          string
	tolerance     float64
	maxIterations int
	workers       int
	upper         float64
}

// newUnwrapCmd creates the unwrap command. Flags set explicitly override
// the values of --config.
func newUnwrapCmd() *cobra.Command {
	opts := unwrapOpts{
		mode:          unwrap.DefaultMode.String(),
		tolerance:     unwrap.DefaultTolerance,
		maxIterations: unwrap.DefaultMaxIterations,
		workers:       unwrap.DefaultWorkers,
		upper:         unwrap.DefaultUpper,
	}

	cmd := &cobra.Command{
		Use:   "unwrap",
		Short: "Unwrap a wrapped phase grid (CSV)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &opts)
			if err != nil {
				return err
			}
			return runUnwrap(cmd, cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.in, "in", "i", "-", "input CSV grid (- for stdin)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "-", "output CSV grid (- for stdout)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "solver mode: integer (min-cost flow) or continuous (relaxation)")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", opts.tolerance, "solver tolerance")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", opts.maxIterations, "solver iteration cap")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "constraint assembly workers")
	cmd.Flags().Float64Var(&opts.upper, "upper", opts.upper, "per-variable bound of integer solves")

	return cmd
}

// resolveConfig loads --config, then applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, opts *unwrapOpts) (Config, error) {
	var cfg Config
	if opts.config != "" {
		var err error
		if cfg, err = LoadConfig(opts.config); err != nil {
			return Config{}, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("mode") || cfg.Mode == "" {
		cfg.Mode = opts.mode
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = opts.tolerance
	}
	if flags.Changed("max-iterations") {
		cfg.MaxIterations = opts.maxIterations
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("upper") {
		cfg.Upper = opts.upper
	}

	return cfg, nil
}

func runUnwrap(cmd *cobra.Command, cfg Config, opts *unwrapOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	wrapped, err := readGridFile(opts.in, cmd.InOrStdin())
	if err != nil {
		return err
	}
	engineOpts, err := cfg.Options(logger)
	if err != nil {
		return err
	}
	eng, err := unwrap.New(engineOpts...)
	if err != nil {
		return err
	}
	logger.Debug("engine ready", "backend", eng.Backend(), "mode", eng.Mode(), "config", opts.config)

	res, err := eng.Solve(ctx, wrapped)
	if err != nil {
		return err
	}
	if err := writeGridFile(opts.out, cmd.OutOrStdout(), res.Unwrapped.Slices()); err != nil {
		return err
	}
	prog.done("unwrapped",
		"rows", res.Unwrapped.Rows(), "cols", res.Unwrapped.Cols(),
		"residues", res.Residues, "clusters", res.ResidueClusters,
		"jumps", res.Jumps.Count(), "objective", res.Objective,
		"iterations", res.Iterations)

	return nil
}
