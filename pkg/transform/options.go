package transform

import (
	"go.uber.org/zap"

	"coord-transf/pkg/linsys"
)

// Option configures fitting.
type Option func(*config)

type config struct {
	tol    float64
	logger *zap.SugaredLogger
}

func newConfig(opts []Option) config {
	cfg := config{
		tol:    linsys.DefaultTolerance,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithTolerance sets the absolute tolerance used for solver pivots, the
// least-squares divisor and inverse determinants. Defaults to 1e-6.
// Coordinates of very large or small magnitude should be rescaled by the caller.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tol = tol
	}
}

// WithLogger sets a logger for fit diagnostics.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func (c config) solve(model string, m [][]float64) ([]float64, error) {
	x, err := linsys.Solve(m, linsys.WithTolerance(c.tol), linsys.WithLogger(c.logger.Named(model)))
	if err != nil {
		return nil, solveErr(model, err)
	}
	return x, nil
}
