package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = 2

// Table renders rows in aligned columns. The first row is the header.
// Cells are padded by their visible width, so styled cells align too.
func (s *Styles) Table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for col, cell := range header {
		widths[col] = lipgloss.Width(cell)
	}
	for _, row := range rows {
		for col := range min(len(row), len(widths)) {
			widths[col] = max(widths[col], lipgloss.Width(row[col]))
		}
	}

	var out strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for col := range widths {
			cell := ""
			if col < len(cells) {
				cell = cells[col]
			}
			out.WriteString(style(cell))
			if col < len(widths)-1 {
				out.WriteString(strings.Repeat(" ", widths[col]-lipgloss.Width(cell)+columnGap))
			}
		}
		out.WriteString("\n")
	}

	writeRow(header, func(cell string) string { return s.Header.Render(cell) })
	for _, row := range rows {
		writeRow(row, func(cell string) string { return cell })
	}
	return out.String()
}
