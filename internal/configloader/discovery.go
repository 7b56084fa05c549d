package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths are the discovered configuration files. Missing files are empty.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// projectConfigFiles are searched in each directory, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".seevg.yml",
	".seevg.yaml",
	".seevg.toml",
	"seevg.yml",
	"seevg.yaml",
	"seevg.toml",
}

//nolint:gochecknoglobals // Read-only lookup table.
var dirConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project config files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  findSystemConfig(),
		User:    findUserConfig(),
		Project: project,
	}, nil
}

func findSystemConfig() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return findConfigInDir(filepath.Join(programData, "seevg"))
	}
	return findConfigInDir("/etc/seevg")
}

// UserConfigDir returns $XDG_CONFIG_HOME/seevg, falling back to ~/.config/seevg.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "seevg")
}

func findUserConfig() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return findConfigInDir(dir)
}

func findConfigInDir(dir string) string {
	for _, name := range dirConfigFiles {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// The search stops at a VCS root, the home directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	current, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range projectConfigFiles {
			path := filepath.Join(current, name)
			if fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(current) || (homeDir != "" && current == homeDir) {
			return "", nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
