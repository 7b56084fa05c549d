package dom

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// String formats the color the way computed styles report it: "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Colorful converts c for color math.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// FromColorful converts back to 8-bit channels, rounding to nearest.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// ParseColor parses a CSS color: hex (#rgb, #rrggbb, with optional alpha
// digits ignored), rgb()/rgba() with numbers or percentages, and named colors.
func ParseColor(value string) (RGB, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch {
	case value == "":
		return RGB{}, false
	case strings.HasPrefix(value, "#"):
		return parseHex(value)
	case strings.HasPrefix(value, "rgb(") || strings.HasPrefix(value, "rgba("):
		return parseFunctional(value)
	case value == "transparent":
		return RGB{}, true
	default:
		named, ok := colornames.Map[value]
		if !ok {
			return RGB{}, false
		}
		return RGB{R: named.R, G: named.G, B: named.B}, true
	}
}

func parseHex(value string) (RGB, bool) {
	switch len(value) {
	case 5:
		value = value[:4]
	case 9:
		value = value[:7]
	case 4, 7:
	default:
		return RGB{}, false
	}

	parsed, err := colorful.Hex(value)
	if err != nil {
		return RGB{}, false
	}
	return FromColorful(parsed), true
}

func parseFunctional(value string) (RGB, bool) {
	open := strings.IndexByte(value, '(')
	if !strings.HasSuffix(value, ")") {
		return RGB{}, false
	}

	fields := strings.FieldsFunc(value[open+1:len(value)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})
	if len(fields) < 3 {
		return RGB{}, false
	}

	var channels [3]uint8
	for idx := range channels {
		channel, ok := parseChannel(fields[idx])
		if !ok {
			return RGB{}, false
		}
		channels[idx] = channel
	}
	return RGB{R: channels[0], G: channels[1], B: channels[2]}, true
}

func parseChannel(field string) (uint8, bool) {
	percent := strings.HasSuffix(field, "%")

	number, err := strconv.ParseFloat(strings.TrimSuffix(field, "%"), 64)
	if err != nil {
		return 0, false
	}
	if percent {
		number = number * 255 / 100
	}

	number = math.Round(number)
	return uint8(max(0, min(255, number))), true
}
