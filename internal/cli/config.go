package cli

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/katalvlaran/phaseflow/lp"
	"github.com/katalvlaran/phaseflow/unwrap"
)

// ErrConfig reports an unreadable or inconsistent configuration.
var ErrConfig = errors.New("cli: invalid configuration")

// Config is the TOML configuration of the unwrap command. Zero values keep
// the engine defaults.
//
//	tolerance      = 1e-4
//	max_iterations = 10000
//	mode           = "integer"   # or "continuous"
//	workers        = 4
//	upper          = 1048576
//	row_weights    = [[0.5, 0.5], ...]   # (R−1)×C
//	col_weights    = [[0.5], ...]        # R×(C−1)
type Config struct {
	Tolerance     float64     `toml:"tolerance"`
	MaxIterations int         `toml:"max_iterations"`
	Mode          string      `toml:"mode"`
	Workers       int         `toml:"workers"`
	Upper         float64     `toml:"upper"`
	RowWeights    [][]float64 `toml:"row_weights"`
	ColWeights    [][]float64 `toml:"col_weights"`
}

// LoadConfig decodes a TOML file. Unknown keys are rejected so typos do not
// silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s: unknown keys %s", ErrConfig, path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// Options converts cfg into engine options. Negative or non-finite values
// and unknown modes are rejected here, before the option constructors would
// panic.
func (cfg Config) Options(logger *log.Logger) ([]unwrap.Option, error) {
	var opts []unwrap.Option
	switch {
	case !finite(cfg.Tolerance):
		return nil, fmt.Errorf("%w: tolerance %g is not finite", ErrConfig, cfg.Tolerance)
	case !finite(cfg.Upper):
		return nil, fmt.Errorf("%w: upper %g is not finite", ErrConfig, cfg.Upper)
	case cfg.Tolerance < 0:
		return nil, fmt.Errorf("%w: tolerance %g < 0", ErrConfig, cfg.Tolerance)
	case cfg.MaxIterations < 0:
		return nil, fmt.Errorf("%w: max_iterations %d < 0", ErrConfig, cfg.MaxIterations)
	case cfg.Workers < 0:
		return nil, fmt.Errorf("%w: workers %d < 0", ErrConfig, cfg.Workers)
	case cfg.Upper < 0:
		return nil, fmt.Errorf("%w: upper %g < 0", ErrConfig, cfg.Upper)
	}

	if cfg.Tolerance > 0 {
		opts = append(opts, unwrap.WithTolerance(cfg.Tolerance))
	}
	if cfg.MaxIterations > 0 {
		opts = append(opts, unwrap.WithMaxIterations(cfg.MaxIterations))
	}
	if cfg.Workers > 0 {
		opts = append(opts, unwrap.WithWorkers(cfg.Workers))
	}
	if cfg.Upper > 0 {
		opts = append(opts, unwrap.WithUpperBound(cfg.Upper))
	}
	if cfg.Mode != "" {
		mode, err := lp.ParseMode(cfg.Mode)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		opts = append(opts, unwrap.WithSolverMode(mode))
	}
	if cfg.RowWeights != nil || cfg.ColWeights != nil {
		opts = append(opts, unwrap.WithWeights(cfg.RowWeights, cfg.ColWeights))
	}
	if logger != nil {
		opts = append(opts, unwrap.WithLogger(logger))
	}

	return opts, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
