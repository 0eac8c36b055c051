package chart

import (
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// default colors of the first and second lines.
var (
	blue   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	orange = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
)

var colorCodes = map[byte]color.Color{
	'b': color.RGBA{B: 0xbf, A: 0xff},
	'g': color.RGBA{G: 0x80, A: 0xff},
	'r': color.RGBA{R: 0xff, A: 0xff},
	'c': color.RGBA{G: 0xbf, B: 0xbf, A: 0xff},
	'm': color.RGBA{R: 0xbf, B: 0xbf, A: 0xff},
	'y': color.RGBA{R: 0xbf, G: 0xbf, A: 0xff},
	'k': color.Black,
}

// lineWidth of all curves.
var lineWidth = vg.Points(4)

// ParseStyle parses a line style token: an optional color code among
// b, g, r, c, m, y, k followed by a dash pattern among "-" (solid),
// "--" (dashed), ":" (dotted) and "-." (dash-dot).
//
// fallback is the color used when the token has no color code.
func ParseStyle(token string, fallback color.Color) (draw.LineStyle, error) {
	style := draw.LineStyle{Color: fallback, Width: lineWidth}
	pattern := token
	if len(token) > 0 {
		if c, ok := colorCodes[token[0]]; ok {
			style.Color = c
			pattern = token[1:]
		}
	}

	switch strings.TrimSpace(pattern) {
	case "-", "":
		style.Dashes = nil
	case "--":
		style.Dashes = []vg.Length{vg.Points(12), vg.Points(6)}
	case ":":
		style.Dashes = []vg.Length{vg.Points(2), vg.Points(6)}
	case "-.":
		style.Dashes = []vg.Length{vg.Points(12), vg.Points(4), vg.Points(2), vg.Points(4)}
	default:
		return style, fmt.Errorf("unknown line style %q", token)
	}
	return style, nil
}
