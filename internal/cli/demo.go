package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"coord-transf/pkg/geometry"
)

// scenario is one of the reference fits printed by the demo command.
type scenario struct {
	name   string
	model  string
	from   []geometry.Point2D
	to     []geometry.Point2D
	probes []geometry.Point2D
}

var demoScenarios = []scenario{
	{
		name:   "scale and translate into Gauss-Krueger coordinates",
		model:  "scale",
		from:   []geometry.Point2D{{X: 0, Y: 0}, {X: 200, Y: 200}},
		to:     []geometry.Point2D{{X: 3526000, Y: 5730000}, {X: 3528000, Y: 5732000}},
		probes: []geometry.Point2D{{X: 100, Y: 100}},
	},
	{
		name:   "affine from a digitized triangle",
		model:  "affine",
		from:   []geometry.Point2D{{X: 5.75, Y: 7.25}, {X: 15.75, Y: 8}, {X: 7.25, Y: 13.75}},
		to:     []geometry.Point2D{{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 100, Y: 150}},
		probes: []geometry.Point2D{{X: 18, Y: 14.75}, {X: 11.25, Y: 11}},
	},
	{
		name:   "Helmert least squares over a square",
		model:  "helmert",
		from:   []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}},
		to:     []geometry.Point2D{{X: -5.1, Y: -5}, {X: 0, Y: -4.9}, {X: 0.1, Y: 0}, {X: -5, Y: -0.1}},
		probes: []geometry.Point2D{{X: -2.5, Y: -2.5}},
	},
	{
		name:   "bilinear from a digitized quadrilateral",
		model:  "bilinear",
		from:   []geometry.Point2D{{X: 5.75, Y: 7.25}, {X: 15.75, Y: 8}, {X: 18.5, Y: 15}, {X: 7.25, Y: 13.75}},
		to:     []geometry.Point2D{{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 200, Y: 150}, {X: 100, Y: 150}},
		probes: []geometry.Point2D{{X: 18, Y: 14.75}, {X: 11.25, Y: 11}},
	},
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Fit and print the reference scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for i, sc := range demoScenarios {
				if i > 0 {
					fmt.Fprintln(w, "--------------------------------------------")
				}
				rootOpts.logger.Debugw("running scenario", "name", sc.name, "model", sc.model)

				t, err := fitModel(sc.model, sc.from, sc.to, rootOpts.fitOptions()...)
				if err != nil {
					return errors.Wrap(err, sc.name)
				}
				writeReport(w, t, sc.probes)
			}
			return nil
		},
	}
}
