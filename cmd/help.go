package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHelpCmd creates the help command. With a command name it prints that
// command's usage, otherwise the top-level overview.
func NewHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [COMMAND]",
		Short: "Show this help message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			if len(args) == 0 {
				PrintHelp(root)
				return nil
			}
			target, _, err := root.Find(args)
			if err != nil || target == root {
				return fmt.Errorf("unknown help topic %q", args[0])
			}
			fmt.Fprint(helpWriter(cmd), target.UsageString())
			return nil
		},
	}
}

func init() {
	RootCmd.SetHelpCommand(NewHelpCmd())
}
