// Package cli provides the Cobra command structure for seevg.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/seevg/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root seevg command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "seevg",
		Short: "Format SVG markup and inspect it element by element",
		Long: `seevg pretty-prints SVG markup and maps rendered elements back to the
tags that produced them.

It formats standalone .svg files and svg blocks inside Markdown, reports
where each element of a drawing is written in its source, and serves a
browser inspector where hovering an element highlights it in the preview
and in the markup.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newLocateCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
