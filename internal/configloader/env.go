package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/seevg/pkg/config"
)

// EnvPrefix prefixes every seevg environment variable.
const EnvPrefix = "SEEVG_"

type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"MAX_LINE_WIDTH", "Formatter line width in characters", intVar(func(c *config.Config, v int) { c.Format.MaxLineWidth = v })},
	{"FONT_SIZE", "Editor font size in pixels for --width auto", floatVar(func(c *config.Config, v float64) { c.Format.FontSize = v })},
	{"MARKDOWN", "Format svg blocks in Markdown files: true or false", boolVar(func(c *config.Config, v bool) { c.Format.Markdown = v })},
	{"ADDR", "Inspector listen address", stringVar(func(c *config.Config, v string) { c.Serve.Addr = v })},
	{"DARK_BACKGROUND", "Inspector dark background: true or false", boolVar(func(c *config.Config, v bool) { c.Serve.DarkBackground = v })},
	{"ZOOM", "Inspector zoom percent (25-300)", intVar(func(c *config.Config, v int) { c.Serve.Zoom = v })},
	{"WATCH", "Reload the served file when it changes: true or false", boolVar(func(c *config.Config, v bool) { c.Serve.Watch = v })},
	{"JOBS", "Number of parallel workers (0 = auto)", intVar(func(c *config.Config, v int) { c.Jobs = v })},
	{"FORMAT", "Output format: text, json or diff", stringVar(func(c *config.Config, v string) { c.Output = config.OutputFormat(v) })},
	{"BACKUPS_ENABLED", "Back up files before rewriting: true or false", boolVar(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none", stringVar(func(c *config.Config, v string) { c.Backups.Mode = v })},
	{"IGNORE", "Comma-separated ignore patterns", stringVar(func(c *config.Config, v string) { c.Ignore = parseSliceValue(v) })},
	{"NO_BACKUPS", "Disable backups: true or false", boolVar(func(c *config.Config, v bool) { c.NoBackups = v })},
}

// LoadFromEnv applies SEEVG_* overrides to cfg. Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := EnvPrefix + ev.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported variable with its description, sorted by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, 0, len(envVars))
	for _, ev := range envVars {
		out = append(out, [2]string{EnvPrefix + ev.suffix, ev.description})
	}
	slices.SortFunc(out, func(a, b [2]string) int { return strings.Compare(a[0], b[0]) })
	return out
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

func intVar(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}
}

func floatVar(set func(*config.Config, float64)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", value)
		}
		set(cfg, f)
		return nil
	}
}

// parseSliceValue splits a comma-separated list, trimming and dropping empty items.
func parseSliceValue(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
