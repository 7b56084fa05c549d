package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/seevg/internal/ui/pretty"
)

// HelpFormatter renders cobra help and usage with lipgloss styles.
type HelpFormatter struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpFormatter creates a formatter. Color follows mode ("auto", "always",
// "never") as resolved for writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	return &HelpFormatter{
		command: styles.Bold,
		heading: styles.Header,
		name:    styles.Tag,
		flag:    styles.Span,
		dim:     styles.Dim,
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}
{{- if .HasExample }}

{{ heading "Examples:" }}
{{ dim .Example }}{{ end }}
{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}{{ range .Commands }}{{ if or .IsAvailableCommand (eq .Name "help") }}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}{{ end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{ end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{ end }}
{{- if .HasAvailableSubCommands }}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.{{ end }}
`

const helpTemplate = `{{ with or .Long .Short }}{{ trimRight . }}

{{ end }}` + usageTemplate

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := template.FuncMap{
		"command": h.command.Render,
		"heading": h.heading.Render,
		"name":    h.name.Render,
		"dim":     h.dim.Render,
		"flags":   h.flagUsages,
		"rpad":    rpad,
		"trimRight": func(s string) string {
			return strings.TrimRight(s, " \t\n")
		},
	}
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// flagUsages styles pflag's usage block: flag names in color, the value
// placeholder dimmed, the description untouched.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimRight(flags.FlagUsages(), "\n"), "\n")
	for idx, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		spec, desc, ok := strings.Cut(trimmed, "  ")
		if !ok {
			continue
		}

		words := strings.Fields(spec)
		for w, word := range words {
			if strings.HasPrefix(word, "-") {
				words[w] = h.flag.Render(strings.TrimSuffix(word, ",")) + commaOf(word)
			} else {
				words[w] = h.dim.Render(word)
			}
		}
		pad := strings.Repeat(" ", len(line)-len(trimmed))
		lines[idx] = pad + strings.Join(words, " ") + "   " + strings.TrimLeft(desc, " ")
	}
	return strings.Join(lines, "\n")
}

func commaOf(word string) string {
	if strings.HasSuffix(word, ",") {
		return ","
	}
	return ""
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
