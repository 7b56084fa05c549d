package config

import (
	"fmt"
	"strings"
)

// TemplateFormat is the file format of a generated configuration.
type TemplateFormat string

const (
	TemplateYAML TemplateFormat = "yaml"
	TemplateTOML TemplateFormat = "toml"
)

// TemplateFileName returns the project config file name for the format.
func TemplateFileName(tf TemplateFormat) string {
	if tf == TemplateTOML {
		return ".seevg.toml"
	}
	return ".seevg.yml"
}

// GenerateTemplate renders a commented configuration holding cfg's persisted
// values. A nil cfg uses the defaults.
func GenerateTemplate(tf TemplateFormat, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	switch tf {
	case TemplateYAML, "":
		return []byte(yamlTemplate(cfg)), nil
	case TemplateTOML:
		return []byte(tomlTemplate(cfg)), nil
	default:
		return nil, fmt.Errorf("unknown template format %q", tf)
	}
}

func yamlTemplate(cfg *Config) string {
	var b strings.Builder
	b.WriteString("# seevg configuration\n\n")
	b.WriteString("format:\n")
	b.WriteString("  # Characters per line before attributes wrap.\n")
	fmt.Fprintf(&b, "  max_line_width: %d\n", cfg.Format.MaxLineWidth)
	b.WriteString("  # Editor font size in pixels, for --width auto.\n")
	fmt.Fprintf(&b, "  font_size: %g\n", cfg.Format.FontSize)
	b.WriteString("  # Also format svg blocks in Markdown files.\n")
	fmt.Fprintf(&b, "  markdown: %t\n\n", cfg.Format.Markdown)

	b.WriteString("serve:\n")
	fmt.Fprintf(&b, "  addr: %q\n", cfg.Serve.Addr)
	fmt.Fprintf(&b, "  dark_background: %t\n", cfg.Serve.DarkBackground)
	b.WriteString("  # Preview zoom in percent, 25 to 300.\n")
	fmt.Fprintf(&b, "  zoom: %d\n", cfg.Serve.Zoom)
	fmt.Fprintf(&b, "  watch: %t\n\n", cfg.Serve.Watch)

	b.WriteString("# Glob patterns to skip.\n")
	if len(cfg.Ignore) == 0 {
		b.WriteString("# ignore:\n#   - \"node_modules/**\"\n\n")
	} else {
		b.WriteString("ignore:\n")
		for _, pattern := range cfg.Ignore {
			fmt.Fprintf(&b, "  - %q\n", pattern)
		}
		b.WriteString("\n")
	}

	b.WriteString("backups:\n")
	fmt.Fprintf(&b, "  enabled: %t\n", cfg.Backups.Enabled)
	fmt.Fprintf(&b, "  mode: %s\n", cfg.Backups.Mode)
	return b.String()
}

func tomlTemplate(cfg *Config) string {
	var b strings.Builder
	b.WriteString("# seevg configuration\n\n")

	if len(cfg.Ignore) > 0 {
		quoted := make([]string, 0, len(cfg.Ignore))
		for _, pattern := range cfg.Ignore {
			quoted = append(quoted, fmt.Sprintf("%q", pattern))
		}
		fmt.Fprintf(&b, "ignore = [%s]\n\n", strings.Join(quoted, ", "))
	}

	b.WriteString("[format]\n")
	fmt.Fprintf(&b, "max_line_width = %d\n", cfg.Format.MaxLineWidth)
	fmt.Fprintf(&b, "font_size = %s\n", tomlFloat(cfg.Format.FontSize))
	fmt.Fprintf(&b, "markdown = %t\n\n", cfg.Format.Markdown)

	b.WriteString("[serve]\n")
	fmt.Fprintf(&b, "addr = %q\n", cfg.Serve.Addr)
	fmt.Fprintf(&b, "dark_background = %t\n", cfg.Serve.DarkBackground)
	fmt.Fprintf(&b, "zoom = %d\n", cfg.Serve.Zoom)
	fmt.Fprintf(&b, "watch = %t\n\n", cfg.Serve.Watch)

	b.WriteString("[backups]\n")
	fmt.Fprintf(&b, "enabled = %t\n", cfg.Backups.Enabled)
	fmt.Fprintf(&b, "mode = %q\n", cfg.Backups.Mode)
	return b.String()
}

// tomlFloat always writes a decimal point so the value decodes as a float.
func tomlFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
