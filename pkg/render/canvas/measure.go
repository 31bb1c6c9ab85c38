package canvas

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	lineSpacing = 1.2
	boldWidth   = 1.08
)

// measureFace provides glyph advances. Its metrics are scaled linearly to the
// requested font size, which is close enough for the sans-serif fonts viewers
// substitute.
var measureFace font.Face = basicfont.Face7x13

// measureText returns the width and height in pixels of text set at size.
// Lines are separated by "\n".
func measureText(text string, size float64, bold bool) (w, h float64) {
	faceHeight := float64(measureFace.Metrics().Height.Ceil())
	scale := size / faceHeight

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		lw := float64(font.MeasureString(measureFace, line).Ceil()) * scale
		w = max(w, lw)
	}
	if bold {
		w *= boldWidth
	}
	h = float64(len(lines)) * size * lineSpacing
	return w, h
}
