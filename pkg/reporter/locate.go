package reporter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/yaklabco/seevg/internal/ui/pretty"
	"github.com/yaklabco/seevg/pkg/config"
	"github.com/yaklabco/seevg/pkg/locate"
	"github.com/yaklabco/seevg/pkg/markup"
)

// rootPath names the svg root in element listings.
const rootPath = "/"

// Location is one located element, ready for output.
type Location struct {
	Path   string      `json:"path"`
	Tag    string      `json:"tag"`
	Found  bool        `json:"found"`
	Span   markup.Span `json:"span"`
	Line   int         `json:"line,omitempty"`
	Column int         `json:"column,omitempty"`
	Source string      `json:"source,omitempty"`
}

// Locations converts locator entries into output rows, resolving line and
// column numbers against doc.
func Locations(doc *markup.Document, entries []locate.Entry) []Location {
	locs := make([]Location, 0, len(entries))
	for _, entry := range entries {
		loc := Location{
			Path:  entry.Path.String(),
			Tag:   entry.Node.Name(),
			Found: entry.Found,
			Span:  entry.Span,
		}
		if loc.Path == "" {
			loc.Path = rootPath
		}
		if entry.Found {
			loc.Line, loc.Column = doc.LineAt(entry.Span.From)
			loc.Source = doc.Slice(entry.Span)
		}
		locs = append(locs, loc)
	}
	return locs
}

// WriteLocations writes locs as an aligned table or, with FormatJSON, a JSON array.
func WriteLocations(opts Options, locs []Location) (err error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if opts.Format == config.FormatJSON {
		if locs == nil {
			locs = []Location{}
		}
		encoder := json.NewEncoder(bw)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(locs); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	rows := make([][]string, 0, len(locs))
	for _, loc := range locs {
		where, span := styles.Dim.Render("not found"), styles.Dim.Render("-")
		if loc.Found {
			where = styles.Location.Render(strconv.Itoa(loc.Line) + ":" + strconv.Itoa(loc.Column))
			span = styles.Span.Render(loc.Span.String())
		}
		rows = append(rows, []string{loc.Path, styles.Tag.Render(loc.Tag), where, span})
	}

	_, err = bw.WriteString(styles.Table([]string{"PATH", "TAG", "LINE:COL", "SPAN"}, rows))
	return err
}
