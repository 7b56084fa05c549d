// Package configloader discovers, merges and validates seevg configuration.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/seevg/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts.
	// Defaults to the current directory.
	WorkingDir string

	// ExplicitPath is a config file named with --config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds values from command-line flags. It has the highest precedence.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal findings.
	Warnings []string
}

// Load resolves the configuration. Precedence, highest first:
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (SEEVG_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.seevg.yml, .seevg.yaml or .seevg.toml, searched upward)
//  5. User config ($XDG_CONFIG_HOME/seevg/config.*)
//  6. System config (/etc/seevg/config.*)
//  7. Defaults
//
// Each file is decoded on top of the result so far, so a file only changes
// the keys it sets.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		if err := decodeFile(layer.path, cfg); err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads one config file on top of the defaults.
func LoadFile(path string) (*config.Config, error) {
	cfg := config.NewConfig()
	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeFile decodes path into cfg, choosing the format by extension.
func decodeFile(path string, cfg *config.Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		meta, err := toml.Decode(string(content), cfg)
		if err != nil {
			return fmt.Errorf("parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return &ValidationError{
				FilePath: path,
				Field:    undecoded[0].String(),
				Message:  "unknown key",
			}
		}
	default:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return fmt.Errorf("parse YAML: %w", err)
		}
	}
	return nil
}
