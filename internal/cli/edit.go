package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lexkeep/internal/logging"
	"github.com/yaklabco/lexkeep/internal/ui/pretty"
	"github.com/yaklabco/lexkeep/pkg/config"
	"github.com/yaklabco/lexkeep/pkg/fsutil"
	"github.com/yaklabco/lexkeep/pkg/reporter"
	"github.com/yaklabco/lexkeep/pkg/script"
	"github.com/yaklabco/lexkeep/pkg/textdiff"
)

type editFlags struct {
	script     string
	write      bool
	diff       bool
	noBackups  bool
	indent     string
	lineEnding string
	flavor     string
}

func newEditCommand(globals *globalFlags) *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Apply an edit script to a file",
		Long: `Parse FILE, apply the edits of a YAML script to its syntax tree and print
the result. Text around untouched nodes is kept byte for byte; inserted
nodes are laid out from the language's rule table and use the file's
line-ending convention.

By default the result goes to standard output. --diff shows a unified diff
instead, and --write replaces the file after making a backup.`,
		Example: `  lexkeep edit --script add-field.yaml src/Main.java
  lexkeep edit -s rename.yaml --diff src/Main.java
  lexkeep edit -s rename.yaml --write --no-backups src/Main.java`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, globals, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.script, "script", "s", "", "Edit script (YAML)")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "Write the result back to FILE")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "Show a unified diff instead of the result")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "Do not keep a backup when writing")
	cmd.Flags().StringVar(&flags.indent, "indent", "", "Indent policy for new nodes: canonical or inherit")
	cmd.Flags().StringVar(&flags.lineEnding, "line-ending", "",
		"Line ending for files without line breaks: lf, crlf or cr")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark or gfm")

	return cmd
}

func runEdit(cmd *cobra.Command, globals *globalFlags, flags *editFlags, file string) error {
	ctx := cmd.Context()
	logger := logging.ForPath(ctx, file)

	if flags.script == "" {
		return fmt.Errorf("%w: --script is required", ErrUsage)
	}

	workDir, err := globals.workingDir()
	if err != nil {
		return err
	}
	cfg, err := globals.loadConfig(ctx, workDir, &config.Config{
		Indent:     flags.indent,
		LineEnding: flags.lineEnding,
		Flavor:     config.Flavor(flags.flavor),
		Write:      flags.write,
		Diff:       flags.diff,
		NoBackups:  flags.noBackups,
	})
	if err != nil {
		return err
	}

	edits, err := script.Load(globals.resolve(workDir, flags.script))
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	engine, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}
	doc, err := engine.Open(ctx, globals.resolve(workDir, file))
	if err != nil {
		return err
	}
	if err := edits.Apply(doc.Session); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfig, file, err)
	}
	logger.Debug("applied script",
		logging.FieldScript, flags.script,
		logging.FieldEdits, len(edits.Edits),
		logging.FieldLanguage, doc.Language,
	)

	text, err := doc.Print()
	if err != nil {
		return fmt.Errorf("print %s: %w", file, err)
	}

	out := cmd.OutOrStdout()
	if cfg.Diff {
		styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, out))
		reporter.WriteDiff(out, styles, textdiff.Generate(file, doc.Content, []byte(text)))
	}

	if cfg.Write {
		backups := fsutil.NewBackupConfig(cfg.Backups.Enabled && !cfg.NoBackups, cfg.Backups.Mode)
		result, err := doc.Save(ctx, backups)
		if err != nil {
			return fmt.Errorf("save %s: %w", file, err)
		}
		if !result.Written {
			logger.Info("unchanged")
			return nil
		}
		if result.BackupPath != "" {
			logger.Info("written", logging.FieldBackup, result.BackupPath)
		} else {
			logger.Info("written")
		}
		return nil
	}

	if !cfg.Diff {
		if _, err := io.WriteString(out, text); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
