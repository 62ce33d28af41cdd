package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// FitOptions holds flags for the fit command.
type FitOptions struct {
	*RootOptions
	Model  string
	From   []string
	To     []string
	Points []string
}

// NewFitCommand creates the fit command.
func NewFitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a transformation to id-points given on the command line",
		Long: `Fit a transformation to pairs of identical points and apply it.

The n-th --from point corresponds to the n-th --to point.

Example:
  coordtransf fit --model scale --from 0,0 --from 200,200 \
      --to 3526000,5730000 --to 3528000,5732000 --point 100,100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Model, "model", "m", "affine", fmt.Sprintf("transformation model %v", modelNames()))
	cmd.Flags().StringArrayVar(&opts.From, "from", nil, "source id-point x,y (repeatable)")
	cmd.Flags().StringArrayVar(&opts.To, "to", nil, "target id-point x,y (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.Points, "point", "p", nil, "point x,y to transform (repeatable)")

	return cmd
}

func runFit(cmd *cobra.Command, opts *FitOptions) error {
	from, err := parsePoints(opts.From)
	if err != nil {
		return errors.Wrap(err, "--from")
	}
	to, err := parsePoints(opts.To)
	if err != nil {
		return errors.Wrap(err, "--to")
	}
	probes, err := parsePoints(opts.Points)
	if err != nil {
		return errors.Wrap(err, "--point")
	}

	opts.logger.Debugw("fitting", "model", opts.Model, "points", len(from))
	t, err := fitModel(opts.Model, from, to, opts.fitOptions()...)
	if err != nil {
		return err
	}
	writeReport(cmd.OutOrStdout(), t, probes)
	return nil
}
