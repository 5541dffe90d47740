package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lexkeep/internal/logging"
	"github.com/yaklabco/lexkeep/pkg/config"
)

func newPrintCommand(globals *globalFlags) *cobra.Command {
	var flavor string

	cmd := &cobra.Command{
		Use:   "print FILE",
		Short: "Parse a file and print it back",
		Long: `Parse FILE and print its syntax tree back through the lexical printer.

Without edits the output is identical to the input. Use it to see whether
a file survives the round trip before editing it.`,
		Example: `  lexkeep print src/Main.java
  lexkeep print README.md > /tmp/README.md`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			workDir, err := globals.workingDir()
			if err != nil {
				return err
			}
			cfg, err := globals.loadConfig(ctx, workDir, &config.Config{Flavor: config.Flavor(flavor)})
			if err != nil {
				return err
			}
			engine, err := newEngine(ctx, cfg)
			if err != nil {
				return err
			}

			path := globals.resolve(workDir, args[0])
			doc, err := engine.Open(ctx, path)
			if err != nil {
				return err
			}
			text, err := doc.Print()
			if err != nil {
				return fmt.Errorf("print %s: %w", args[0], err)
			}

			le, fallback := doc.LineEnding()
			logging.ForPath(ctx, args[0]).Debug("printed",
				logging.FieldLanguage, doc.Language,
				logging.FieldLineEnding, le,
				logging.FieldFallback, fallback,
			)

			if _, err := io.WriteString(cmd.OutOrStdout(), text); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flavor, "flavor", "", "Markdown flavor: commonmark or gfm")

	return cmd
}
