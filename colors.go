package jetsweep

import (
	"image/color"

	"gonum.org/v1/plot/vg/draw"
)

// LineColor is the overlay colour of the i-th algorithm in a comparison plot.
func LineColor(i int) color.Color {
	lineColor := color.RGBA{A: 255}
	switch i {
	case 1:
		lineColor = color.RGBA{R: 255, A: 255}
	case 2:
		lineColor = color.RGBA{G: 180, A: 255}
	case 3:
		lineColor = color.RGBA{B: 255, A: 255}
	}
	return lineColor
}

// Glyph is the marker shape of the i-th algorithm.
func Glyph(i int) draw.GlyphDrawer {
	switch i {
	case 1:
		return draw.SquareGlyph{}
	case 2:
		return draw.TriangleGlyph{}
	case 3:
		return draw.CrossGlyph{}
	}
	return draw.CircleGlyph{}
}
