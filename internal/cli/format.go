package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/seevg/internal/logging"
	"github.com/yaklabco/seevg/internal/ui/pretty"
	"github.com/yaklabco/seevg/pkg/config"
	"github.com/yaklabco/seevg/pkg/fix"
	"github.com/yaklabco/seevg/pkg/format"
	"github.com/yaklabco/seevg/pkg/langdetect"
	"github.com/yaklabco/seevg/pkg/mdsvg"
	"github.com/yaklabco/seevg/pkg/reporter"
	"github.com/yaklabco/seevg/pkg/runner"
)

// stdinName is the path shown for input read from stdin.
const stdinName = "stdin"

type formatFlags struct {
	width  string
	output string
	diff   bool
	ignore []string
}

func newFormatCommand() *cobra.Command {
	var cfg config.Config
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...|-]",
		Short: "Format SVG files and svg blocks in Markdown",
		Long: `Pretty-print SVG markup: one tag per line, two-space indentation by
nesting depth, and long tags wrapped between attributes.

Formats every .svg file under the given paths, plus svg code fences and
inline <svg> blocks in Markdown files. With "-" the input is read from
stdin and the result written to stdout.`,
		Example: `  seevg format                   # Report files under . that need formatting
  seevg format --write icons/    # Rewrite files in place
  seevg format --check           # Exit 1 when anything would change
  seevg format --diff logo.svg   # Show the changes as a unified diff
  cat logo.svg | seevg format -  # Format stdin
  seevg format --width auto -    # Wrap to the terminal width`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "exit with status 1 if any file would change")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "with --write, report changes without writing")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print changes as a unified diff (same as --format diff)")
	cmd.Flags().StringVar(&flags.output, "format", "text", "output format: text, json, diff")
	cmd.Flags().StringVar(&flags.width, "width", "", "line width in characters, or auto for the terminal width")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *formatFlags) error {
	logger := logging.FromContext(cmd.Context())

	if flags.diff {
		if cmd.Flags().Changed("format") && flags.output != string(config.FormatDiff) {
			return fmt.Errorf("%w: --diff conflicts with --format %s", errInvalidUsage, flags.output)
		}
		flags.output = string(config.FormatDiff)
	}
	output, err := config.ParseOutputFormat(flags.output)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidUsage, err)
	}
	if cliCfg.Write && cliCfg.Check {
		return fmt.Errorf("%w: --write and --check are mutually exclusive", errInvalidUsage)
	}

	width, err := parseWidth(flags.width, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidUsage, err)
	}

	cliCfg.Output = output
	cliCfg.Ignore = flags.ignore
	cliCfg.Format.MaxLineWidth = width

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	formatter := format.New(cfg.FormatterOptions())

	logger.Debug("configuration loaded",
		logging.FieldWidth, cfg.Format.MaxLineWidth,
		logging.FieldWrite, cfg.Write,
		logging.FieldCheck, cfg.Check,
		logging.FieldJobs, cfg.Jobs,
	)

	if len(args) == 1 && args[0] == "-" {
		return formatStdin(cmd, formatter, cfg)
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Write:        cfg.Write && !cfg.DryRun,
		Config:       cfg,
	}

	result, err := runner.New(formatter).Run(cmd.Context(), runOpts)
	if err != nil {
		return errors.Join(errors.New("format run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Output,
		Color:       colorMode(cmd),
		ShowSummary: true,
		Write:       runOpts.Write,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(cmd.Context(), result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return errorFromExitCode(ExitCodeFromResult(result, cfg.Check))
}

// formatStdin formats stdin as SVG or Markdown, whichever it looks like.
func formatStdin(cmd *cobra.Command, formatter *format.Formatter, cfg *config.Config) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	original := string(data)

	var formatted string
	switch kind := langdetect.DetectContent(data); kind {
	case langdetect.KindSVG:
		formatted = runner.New(formatter).FormatSVG(original)
	case langdetect.KindMarkdown:
		result, err := mdsvg.Format(original, formatter)
		if err != nil {
			return fmt.Errorf("format stdin: %w", err)
		}
		formatted = result.Text
	default:
		return fmt.Errorf("%w: stdin is neither SVG nor Markdown", errInvalidUsage)
	}

	out := cmd.OutOrStdout()
	switch {
	case cfg.Output == config.FormatDiff:
		diff, err := fix.GenerateDiff(stdinName, original, formatted)
		if err != nil {
			return err
		}
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
		for _, line := range strings.SplitAfter(diff.String(), "\n") {
			if line != "" {
				fmt.Fprintln(out, styles.DiffLine(strings.TrimSuffix(line, "\n")))
			}
		}
	case cfg.Check:
		if formatted != original {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: needs formatting\n", stdinName)
		}
	default:
		fmt.Fprint(out, formatted)
	}

	if cfg.Check && formatted != original {
		return ErrFormatChanges
	}
	return nil
}

// parseWidth reads the --width flag. Empty keeps the configured width and
// "auto" measures the terminal behind w, falling back to the configured
// width when w is not a terminal.
func parseWidth(value string, w io.Writer) (int, error) {
	switch value {
	case "":
		return 0, nil
	case "auto":
		file, ok := w.(*os.File)
		if !ok || !term.IsTerminal(int(file.Fd())) {
			return 0, nil
		}
		cols, _, err := term.GetSize(int(file.Fd()))
		if err != nil {
			return 0, fmt.Errorf("measure terminal: %w", err)
		}
		return cols, nil
	}

	width, err := strconv.Atoi(value)
	if err != nil || width <= 0 {
		return 0, fmt.Errorf("invalid width %q: want a positive number or auto", value)
	}
	return width, nil
}
