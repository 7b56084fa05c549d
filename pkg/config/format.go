package config

import (
	"fmt"
	"strings"
)

// OutputFormat selects how results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// ParseOutputFormat validates a format name. Matching is case-insensitive.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch out := OutputFormat(strings.ToLower(strings.TrimSpace(name))); out {
	case FormatText, FormatJSON, FormatDiff:
		return out, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or diff)", name)
	}
}
