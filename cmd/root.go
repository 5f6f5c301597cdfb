package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/molmark/internal/colors"
	"github.com/cristianoliveira/molmark/internal/config"
	"github.com/cristianoliveira/molmark/internal/logging"
	"github.com/cristianoliveira/molmark/internal/version"
)

const description = "Highlight and selection playground for molecular structures."

// outputWriter overrides where help text goes. Nil means the command's stdout.
var outputWriter io.Writer

var (
	debugFlag   bool
	quietFlag   bool
	noColorFlag bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:                "molmark",
	Short:              description,
	Long:               description,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
	RootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Only log errors")
	RootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			fmt.Fprint(helpWriter(cmd), cmd.UsageString())
			return
		}
		PrintHelp(cmd)
	})
}

// setup loads configuration and initializes console output and logging.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	overrides := map[string]bool{"debug": debugFlag, "quiet": quietFlag}
	for key, set := range overrides {
		if !set {
			continue
		}
		if err := config.Set(key, "true"); err != nil {
			return err
		}
	}
	if noColorFlag {
		if err := config.Set("color", "false"); err != nil {
			return err
		}
	}

	colors.SetDebug(config.GetBool("debug", false))
	colors.SetColor(config.GetBool("color", true))
	colors.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.Name(), "args", args)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	logging.Debug("command finished", "command", cmd.Name())
	return logging.ShutdownGlobal()
}

func helpWriter(cmd *cobra.Command) io.Writer {
	if outputWriter != nil {
		return outputWriter
	}
	return cmd.OutOrStdout()
}

// PrintHelp writes the top-level help text.
func PrintHelp(cmd *cobra.Command) {
	commandOrder := []string{"replay", "explore", "config", "version", "help"}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	fmt.Fprintf(helpWriter(cmd), `molmark v%s

%s

USAGE:
    molmark [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Enable debug output
    --quiet         Only log errors
    --no-color      Disable colored output
    -h, --help      Show help message
`, cmd.Version, description, strings.Join(cmdLines, "\n"))
}
