package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"coord-transf/internal/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "coordtransf %s\n", version.String())
			return nil
		},
	}
}
