package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/seevg/internal/configloader"
	"github.com/yaklabco/seevg/internal/logging"
	"github.com/yaklabco/seevg/pkg/config"
)

// loadConfig resolves the configuration for cmd with flags in cliCfg taking
// precedence. It returns the working directory used for discovery.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(cmd.Context())

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}

	return result.Config, workDir, nil
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
