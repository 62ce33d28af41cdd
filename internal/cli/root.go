// Package cli implements the coordtransf command line.
package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coord-transf/pkg/linsys"
	"coord-transf/pkg/transform"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Tolerance float64

	logger *zap.SugaredLogger
}

// NewRootCommand creates the root command for the coordtransf CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "coordtransf",
		Short: "2D coordinate transformations from identical points",
		Long: `Estimate scale+translate, affine, Helmert and bilinear transformations
from pairs of identical points and apply them to arbitrary points.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Tolerance <= 0 {
				return errors.Errorf("invalid tolerance %v: must be positive", opts.Tolerance)
			}
			logger, err := newLogger(opts.Verbose)
			if err != nil {
				return errors.Wrap(err, "failed to create logger")
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				// Sync on a console stderr returns EINVAL.
				_ = opts.logger.Sync()
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log fit diagnostics")
	cmd.PersistentFlags().Float64Var(&opts.Tolerance, "tolerance", linsys.DefaultTolerance,
		"absolute numerical tolerance for pivots and divisors")

	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewFitCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// fitOptions returns the transform options selected by the global flags.
func (o *RootOptions) fitOptions() []transform.Option {
	opts := []transform.Option{transform.WithTolerance(o.Tolerance)}
	if o.logger != nil {
		opts = append(opts, transform.WithLogger(o.logger))
	}
	return opts
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
