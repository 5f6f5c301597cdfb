package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/molmark/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of molmark.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "molmark version %s\n", version.Detailed())
			return nil
		},
	}
}

func init() {
	RootCmd.AddCommand(NewVersionCmd())
}
