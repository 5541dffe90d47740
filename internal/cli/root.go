// Package cli provides the Cobra command structure for lexkeep.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/lexkeep/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	chdir      string
}

// NewRootCommand creates the root lexkeep command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "lexkeep",
		Short: "Edit source files without losing their formatting",
		Long: `lexkeep parses source files into syntax trees, lets you edit the trees,
and prints them back with the original formatting preserved. Text that was
not touched comes out byte for byte as it went in; new nodes are laid out
from per-language rule tables and take the file's line-ending convention.

Java, Go, Python, JavaScript and Rust are parsed with tree-sitter; Markdown
with goldmark.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "info"
			if globals.debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			logger.SetPrefix("lexkeep")
			logger.SetReportCaller(logger.GetLevel() == log.DebugLevel)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&globals.chdir, "chdir", "C", "",
		"run as if started in this directory")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newPrintCommand(globals))
	rootCmd.AddCommand(newEOLCommand(globals))
	rootCmd.AddCommand(newCheckCommand(globals))
	rootCmd.AddCommand(newEditCommand(globals))
	rootCmd.AddCommand(newInitCommand(globals))
	rootCmd.AddCommand(newConfigCommand(globals))
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(globals.color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
