package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lexkeep/internal/logging"
	"github.com/yaklabco/lexkeep/pkg/config"
	"github.com/yaklabco/lexkeep/pkg/reporter"
	"github.com/yaklabco/lexkeep/pkg/runner"
)

type checkFlags struct {
	format     string
	flavor     string
	jobs       int
	ignore     []string
	extensions []string
	verbose    bool
	compact    bool
	noSummary  bool
	follow     bool
}

func newCheckCommand(globals *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Verify that files survive an unedited round trip",
		Long: `Parse every discovered file and print it back without edits. A file
passes when the output is byte-identical to the input.

Directories are walked for the configured extensions; hidden entries and
ignored paths are skipped. Files are checked in parallel.`,
		Example: `  lexkeep check
  lexkeep check src/ docs/README.md
  lexkeep check --format diff
  lexkeep check --format json --jobs 4`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, globals, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: text, json or diff")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark or gfm")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "Number of parallel workers (0 = number of CPUs)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "Glob patterns of paths to skip")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "File extensions to discover, e.g. .java,.md")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "List matching and skipped files too")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "Minified JSON output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "Omit the summary line")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "Traverse symlinked directories")

	return cmd
}

func runCheck(cmd *cobra.Command, globals *globalFlags, flags *checkFlags, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{
		Flavor:     config.Flavor(flags.flavor),
		Jobs:       flags.jobs,
		Ignore:     flags.ignore,
		Extensions: flags.extensions,
	}
	if flags.format != "" {
		format, err := config.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cliCfg.Format = format
	}

	workDir, err := globals.workingDir()
	if err != nil {
		return err
	}
	cfg, err := globals.loadConfig(ctx, workDir, cliCfg)
	if err != nil {
		return err
	}
	engine, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}

	opts := runner.OptionsFromConfig(cfg, args)
	opts.WorkingDir = workDir
	opts.FollowSymlinks = flags.follow

	result, err := runner.New(engine).Run(ctx, opts)
	if err != nil {
		return err
	}

	logger.Debug("check complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesMatched, result.Stats.FilesMatched,
		logging.FieldFilesMismatched, result.Stats.FilesMismatched,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       globals.color,
		ShowSummary: !flags.noSummary,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if result.HasMismatches() || result.HasErrors() {
		return ErrMismatchFound
	}
	return nil
}
