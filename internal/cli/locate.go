package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/seevg/pkg/config"
	"github.com/yaklabco/seevg/pkg/dom"
	"github.com/yaklabco/seevg/pkg/locate"
	"github.com/yaklabco/seevg/pkg/markup"
	"github.com/yaklabco/seevg/pkg/reporter"
)

func newLocateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "locate FILE [ELEMENT-PATH]",
		Short: "Show where elements are written in the markup",
		Long: `Render FILE the way a browser would and map each element back to the
tag that produced it, printing its line, column and byte span.

ELEMENT-PATH selects one element by tag and same-tag index below the svg
root, for example "g[0]/rect[2]"; a segment without an index means [0].
Without it every element is listed. FILE may be "-" for stdin.`,
		Example: `  seevg locate logo.svg
  seevg locate logo.svg g[1]/path[0]
  seevg locate --format json logo.svg`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd, args, output)
		},
	}

	cmd.Flags().StringVar(&output, "format", "text", "output format: text, json")

	return cmd
}

func runLocate(cmd *cobra.Command, args []string, output string) error {
	outFormat, err := config.ParseOutputFormat(output)
	if err != nil || outFormat == config.FormatDiff {
		return fmt.Errorf("%w: unsupported format %q", errInvalidUsage, output)
	}

	text, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	tree, err := dom.Render(text)
	if err != nil {
		return fmt.Errorf("render %s: %w", args[0], err)
	}
	if tree.Empty() {
		return fmt.Errorf("%s: no <svg> element", args[0])
	}

	doc := markup.NewDocument(text)
	index := locate.NewDocumentIndex(doc)

	var entries []locate.Entry
	if len(args) == 2 {
		path, err := dom.ParsePath(args[1])
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidUsage, err)
		}
		node := tree.Find(path)
		if node == nil {
			return fmt.Errorf("%s: no element at %q", args[0], args[1])
		}
		span, found := index.Locate(node)
		entries = []locate.Entry{{Node: node, Path: dom.PathOf(node), Span: span, Found: found}}
	} else {
		entries = index.LocateAll(tree)
	}

	return reporter.WriteLocations(reporter.Options{
		Writer: cmd.OutOrStdout(),
		Format: outFormat,
		Color:  colorMode(cmd),
	}, reporter.Locations(doc, entries))
}

// readSource reads a named file, or stdin for "-".
func readSource(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}
