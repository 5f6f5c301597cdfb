package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/molmark/examples"
	"github.com/cristianoliveira/molmark/internal/colors"
	"github.com/cristianoliveira/molmark/internal/config"
	"github.com/cristianoliveira/molmark/internal/format"
	"github.com/cristianoliveira/molmark/internal/logging"
	"github.com/cristianoliveira/molmark/internal/scenario"
)

// NewReplayCmd creates the command that replays a scenario file.
func NewReplayCmd() *cobra.Command {
	var granularity, example, outputFormat string

	replayCmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Replay a scenario and report every broadcast",
		Long: `Replay a scenario file (TOML or YAML) against the highlight and selection
managers. Every step is printed with the mark broadcasts it caused and the
resulting selection size, followed by the final state of each sequence panel.
If a step fails, the steps before it are still printed.

Use --example to replay one of the bundled scenarios instead of a file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && example == "" {
				return fmt.Errorf("replay needs a scenario file or --example (one of: %s)", strings.Join(examples.Names(), ", "))
			}
			f, err := loadScenario(args, example, granularity)
			if err != nil {
				return err
			}
			ftype := format.FormatterType(outputFormat)
			if ftype == "" {
				ftype = format.FormatterType(config.Get("output_format", "text"))
			}
			res, runErr := scenario.Run(f, scenario.WithLogger(logging.GetGlobal()))
			if res == nil {
				return runErr
			}
			formatter := format.NewFormatter(ftype)
			if err := formatter.FormatReplay(res, cmd.OutOrStdout()); err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}
			colors.Debug(fmt.Sprintf("replayed %s: %d steps, %d broadcasts", f.Name, len(res.Steps), len(res.Broadcasts())))
			return nil
		},
	}
	replayCmd.Flags().StringVarP(&granularity, "granularity", "g", "", "Override the scenario's starting granularity")
	replayCmd.Flags().StringVarP(&example, "example", "e", "", "Replay a bundled example scenario")
	replayCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: text, table or json")
	return replayCmd
}

// loadScenario reads the scenario file named by args, else the bundled
// example, else the built-in demo. The granularity comes from the flag, then
// the file, then the configuration.
func loadScenario(args []string, example, granularity string) (*scenario.File, error) {
	f := scenario.Demo()
	switch {
	case len(args) > 0:
		loaded, err := scenario.Load(args[0])
		if err != nil {
			return nil, err
		}
		f = loaded
	case example != "":
		file, ok := examples.File(example)
		if !ok {
			return nil, fmt.Errorf("unknown example %q (one of: %s)", example, strings.Join(examples.Names(), ", "))
		}
		loaded, err := scenario.LoadFS(examples.FS, file)
		if err != nil {
			return nil, err
		}
		f = loaded
	}
	switch {
	case granularity != "":
		f.Granularity = granularity
	case f.Granularity == "":
		f.Granularity = config.Get("granularity", "residue")
	}
	return f, nil
}

func init() {
	RootCmd.AddCommand(NewReplayCmd())
}
