// Package fonts provides the label font and its metrics.
//
// Labels are set in Go Regular (golang.org/x/image/font/gofont), parsed once
// through gogpu/gg's text package. The same face backs both the width query
// used to center operator labels and the raster canvas, so SVG and PNG
// output agree on label placement.
package fonts

import (
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// LabelSize is the font size, in pixels, of operator labels.
const LabelSize = 16.0

// FontFamily is the CSS font-family used for labels in SVG output.
const FontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

var regular = sync.OnceValue(func() *text.FontSource {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		// The font is compiled in; a parse failure is a build defect.
		panic("fonts: parse Go Regular: " + err.Error())
	}
	return src
})

// Source returns the shared Go Regular font source.
func Source() *text.FontSource {
	return regular()
}

// Face returns a Go Regular face at the given pixel size.
func Face(size float64) text.Face {
	return regular().Face(size)
}

// Width returns the advance width of s at the given size.
func Width(s string, size float64) float64 {
	if s == "" {
		return 0
	}
	w, _ := text.Measure(s, Face(size))
	return w
}

// Ascent returns the distance from the top of a text box to its baseline.
func Ascent(size float64) float64 {
	return Face(size).Metrics().Ascent
}
