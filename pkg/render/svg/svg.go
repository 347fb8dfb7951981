// Package svg provides a reusable SVG canvas for marble diagrams.
//
// A [Canvas] is built once and reset at the start of every render. Shapes
// are written straight into an in-memory document; [Canvas.Bytes] returns a
// complete standalone SVG that can be embedded in HTML or converted with
// render.ToPDF / render.ToPNG.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/matzehuels/marbles/pkg/fonts"
	"github.com/matzehuels/marbles/pkg/render"
)

// Canvas is an SVG [render.Surface].
type Canvas struct {
	body     bytes.Buffer
	width    float64
	height   float64
	id       string
	fontSize float64
}

// New returns an empty canvas with labels set at [fonts.LabelSize].
func New() *Canvas {
	return &Canvas{fontSize: fonts.LabelSize}
}

var _ render.Surface = (*Canvas)(nil)

// SetID sets the document's id attribute. Reset clears it.
func (c *Canvas) SetID(id string) { c.id = id }

// Size returns the current canvas size.
func (c *Canvas) Size() (width, height float64) { return c.width, c.height }

func (c *Canvas) Reset(width, height float64) {
	c.body.Reset()
	c.width, c.height = width, height
	c.id = ""
}

func (c *Canvas) Rect(x, y, w, h float64, fill string, stroke render.Stroke) {
	fmt.Fprintf(&c.body, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"%s/>`+"\n",
		x, y, w, h, escape(fill), strokeAttrs(stroke))
}

func (c *Canvas) Circle(x, y, d float64, fill string, stroke render.Stroke) {
	r := d / 2
	fmt.Fprintf(&c.body, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"%s/>`+"\n",
		x+r, y+r, r, escape(fill), strokeAttrs(stroke))
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, stroke render.Stroke) {
	fmt.Fprintf(&c.body, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"%s/>`+"\n",
		x1, y1, x2, y2, strokeAttrs(stroke))
}

func (c *Canvas) Text(x, y float64, s string) {
	fmt.Fprintf(&c.body, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" fill="black">%s</text>`+"\n",
		x, y+fonts.Ascent(c.fontSize), escape(fonts.FontFamily), c.fontSize, escape(s))
}

func (c *Canvas) TextWidth(s string) float64 {
	return fonts.Width(s, c.fontSize)
}

// Bytes returns the complete SVG document for the current render.
func (c *Canvas) Bytes() []byte {
	var buf bytes.Buffer
	c.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo writes the complete SVG document to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	if c.id != "" {
		fmt.Fprintf(&buf, ` id="%s"`, escape(c.id))
	}
	fmt.Fprintf(&buf, ` viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.width, c.height, c.width, c.height)
	buf.Write(c.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.WriteTo(w)
}

func strokeAttrs(s render.Stroke) string {
	if s.Color == "" {
		return ""
	}
	attrs := fmt.Sprintf(` stroke="%s" stroke-width="%g"`, escape(s.Color), s.Width)
	if s.LineCap != "" {
		attrs += fmt.Sprintf(` stroke-linecap="%s"`, s.LineCap)
	}
	if s.IsDashed() {
		attrs += fmt.Sprintf(` stroke-dasharray="%s"`, s.DashArray())
	}
	return attrs
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
