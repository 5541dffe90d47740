package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lexkeep/internal/configloader"
	"github.com/yaklabco/lexkeep/internal/logging"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand(globals *globalFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a lexkeep configuration file",
		Long: `Create a commented .lexkeep.yml in the current directory with the
default settings. The file lists every option with its default value.`,
		Example: `  lexkeep init
  lexkeep init --format toml
  lexkeep init --output config/lexkeep.yml --force`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, globals, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .lexkeep.yml or .lexkeep.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, globals *globalFlags, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	if flags.format != "yaml" && flags.format != "toml" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrUsage, flags.format)
	}

	output := flags.output
	if output == "" {
		output = ".lexkeep.yml"
		if flags.format == "toml" {
			output = ".lexkeep.toml"
		}
	}

	workDir, err := globals.workingDir()
	if err != nil {
		return err
	}
	path := globals.resolve(workDir, output)

	err = configloader.WriteTemplate(path, flags.force)
	if errors.Is(err, fs.ErrExist) && configloader.IsInteractive() {
		overwrite, promptErr := configloader.Confirm(os.Stdin, cmd.ErrOrStderr(),
			fmt.Sprintf("%s already exists. Overwrite?", output), false)
		if promptErr != nil {
			return promptErr
		}
		if !overwrite {
			logger.Info("left existing file unchanged", logging.FieldPath, output)
			return nil
		}
		err = configloader.WriteTemplate(path, true)
	}
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s already exists; use --force to overwrite: %w", output, err)
	}
	if err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, output)
	return nil
}
