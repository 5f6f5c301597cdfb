package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/molmark/internal/config"
)

// NewConfigCmd creates the command that prints the effective configuration.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying defaults, the config file and
MOLMARK_* environment variables, in TOML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.EffectiveTOML()
			if err != nil {
				return fmt.Errorf("failed to render configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func init() {
	RootCmd.AddCommand(NewConfigCmd())
}
