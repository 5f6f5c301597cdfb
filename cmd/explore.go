package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/molmark/internal/logging"
	"github.com/cristianoliveira/molmark/internal/scenario"
	"github.com/cristianoliveira/molmark/internal/tui/state"
)

// programRunner starts a bubbletea program. Tests replace it.
var programRunner = func(m tea.Model, cmd *cobra.Command) error {
	_, err := tea.NewProgram(m, tea.WithOutput(cmd.OutOrStdout()), tea.WithAltScreen()).Run()
	return err
}

// NewExploreCmd creates the interactive explorer command.
func NewExploreCmd() *cobra.Command {
	var granularity, example string

	exploreCmd := &cobra.Command{
		Use:   "explore [FILE]",
		Short: "Explore a structure interactively",
		Long: `Open the sequence explorer on the first structure of a scenario file, or on
a built-in demo structure when no file is given. Scenario steps are applied
before the explorer starts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadScenario(args, example, granularity)
			if err != nil {
				return err
			}
			session, err := scenario.NewSession(f, scenario.WithLogger(logging.GetGlobal()))
			if err != nil {
				return err
			}
			defer session.Close()

			for i, step := range f.Steps {
				if err := session.Apply(step); err != nil {
					return fmt.Errorf("step %d: %w", i+1, err)
				}
			}

			model, err := state.NewModel(session)
			if err != nil {
				return err
			}
			return programRunner(model, cmd)
		},
	}
	exploreCmd.Flags().StringVarP(&granularity, "granularity", "g", "", "Override the starting granularity")
	exploreCmd.Flags().StringVarP(&example, "example", "e", "", "Explore a bundled example scenario")
	return exploreCmd
}

func init() {
	RootCmd.AddCommand(NewExploreCmd())
}
