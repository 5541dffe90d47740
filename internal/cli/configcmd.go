package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lexkeep/pkg/config"
)

func newConfigCommand(globals *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration lexkeep would use in the working directory,
after merging system, user, project and --config files with LEXKEEP_
environment overrides.`,
		Example: `  lexkeep config
  lexkeep config --format toml
  LEXKEEP_INDENT=inherit lexkeep config`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "yaml" && format != "toml" {
				return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrUsage, format)
			}
			workDir, err := globals.workingDir()
			if err != nil {
				return err
			}
			cfg, err := globals.loadConfig(cmd.Context(), workDir, nil)
			if err != nil {
				return err
			}
			data, err := encodeConfig(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or toml")
	return cmd
}

func encodeConfig(cfg *config.Config, format string) ([]byte, error) {
	if format == "toml" {
		return cfg.ToTOML()
	}
	return cfg.ToYAMLWithHeader("# lexkeep effective configuration")
}
