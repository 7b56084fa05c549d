// Package config defines seevg configuration types.
// These are plain data structures; discovery and merging live in internal/configloader.
package config

import (
	"github.com/yaklabco/seevg/pkg/format"
	"github.com/yaklabco/seevg/pkg/highlight"
)

// BackupsConfig controls backups made before files are rewritten.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // "sidecar"
}

// FormatConfig configures the markup formatter.
type FormatConfig struct {
	// MaxLineWidth is the character budget per line.
	MaxLineWidth int `yaml:"max_line_width" toml:"max_line_width"`

	// FontSize is the editor font size in pixels, used when the width is
	// derived from a pixel measurement.
	FontSize float64 `yaml:"font_size" toml:"font_size"`

	// Markdown enables formatting of SVG blocks inside Markdown files.
	Markdown bool `yaml:"markdown" toml:"markdown"`
}

// ServeConfig configures the browser inspector.
type ServeConfig struct {
	Addr           string `yaml:"addr" toml:"addr"`
	DarkBackground bool   `yaml:"dark_background" toml:"dark_background"`
	Zoom           int    `yaml:"zoom" toml:"zoom"`
	Watch          bool   `yaml:"watch" toml:"watch"`
}

// Config is the root configuration structure.
type Config struct {
	Format  FormatConfig  `yaml:"format" toml:"format"`
	Serve   ServeConfig   `yaml:"serve" toml:"serve"`
	Ignore  []string      `yaml:"ignore" toml:"ignore"`
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `yaml:"-" toml:"-"`

	// Check reports files that would change and fails if any would.
	Check bool `yaml:"-" toml:"-"`

	// DryRun computes changes without writing them.
	DryRun bool `yaml:"-" toml:"-"`

	// Output selects the report format.
	Output OutputFormat `yaml:"-" toml:"-"`

	// Jobs is the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int `yaml:"-" toml:"-"`

	// NoBackups disables backups for this run.
	NoBackups bool `yaml:"-" toml:"-"`
}

// DefaultAddr is the inspector's default listen address.
const DefaultAddr = "127.0.0.1:7420"

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Format: FormatConfig{
			MaxLineWidth: format.DefaultMaxLineWidth,
			FontSize:     format.DefaultFontSize,
			Markdown:     true,
		},
		Serve: ServeConfig{
			Addr:           DefaultAddr,
			DarkBackground: true,
			Zoom:           highlight.DefaultZoom,
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Output: FormatText,
	}
}

// FormatterOptions returns the formatter options this configuration selects.
func (c *Config) FormatterOptions() format.Options {
	opts := format.DefaultOptions()
	if c != nil && c.Format.MaxLineWidth > 0 {
		opts.MaxLineWidth = c.Format.MaxLineWidth
	}
	return opts
}

// BackupsEnabled reports whether backups should be written for this run.
func (c *Config) BackupsEnabled() bool {
	return c != nil && c.Backups.Enabled && !c.NoBackups
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Ignore != nil {
		clone.Ignore = append([]string(nil), c.Ignore...)
	}
	return &clone
}
