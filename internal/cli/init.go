package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/seevg/internal/logging"
	"github.com/yaklabco/seevg/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a seevg configuration file",
		Long: `Write a commented configuration file with the default settings to the
current directory.`,
		Example: `  seevg init                       # Create .seevg.yml
  seevg init --format toml         # Create .seevg.toml
  seevg init --output ci/seevg.yml # Write somewhere else`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .seevg.yml or .seevg.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	tf := config.TemplateFormat(flags.format)
	if tf != config.TemplateYAML && tf != config.TemplateTOML {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", errInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = config.TemplateFileName(tf)
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(tf, config.NewConfig())
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", outputPath)
	return nil
}
