// Package raster provides a reusable bitmap canvas for marble diagrams.
//
// The canvas draws on a single gogpu/gg context that is resized and cleared
// for every render instead of being recreated. Labels use the same Go Regular
// face as the SVG canvas, so both outputs place text identically.
package raster

import (
	"io"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/matzehuels/marbles/pkg/fonts"
	"github.com/matzehuels/marbles/pkg/render"
)

// DefaultScale renders at twice the diagram's logical size.
const DefaultScale = 2.0

// background is painted on every reset; PNGs of the diagram are not transparent.
const background = "#FFFFFF"

var namedColors = map[string]string{
	"black": "#000000",
	"white": "#FFFFFF",
	"red":   "#FF0000",
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithScale sets the pixel density relative to diagram units.
func WithScale(scale float64) Option {
	return func(c *Canvas) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// Canvas is a raster [render.Surface]. Drawing errors are sticky: the first
// one is kept and reported by [Canvas.Err] and [Canvas.EncodePNG].
type Canvas struct {
	scale float64
	ctx   *gg.Context
	face  text.Face
	mu    sync.Mutex
	err   error
}

var _ render.Surface = (*Canvas)(nil)

// New returns a canvas. The underlying context is created on first Reset.
func New(opts ...Option) *Canvas {
	c := &Canvas{scale: DefaultScale}
	for _, opt := range opts {
		opt(c)
	}
	c.face = fonts.Face(fonts.LabelSize * c.scale)
	return c
}

// Scale returns the canvas pixel density.
func (c *Canvas) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

// SetScale changes the pixel density used from the next Reset on.
func (c *Canvas) SetScale(scale float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if scale <= 0 || scale == c.scale {
		return
	}
	c.scale = scale
	c.face = fonts.Face(fonts.LabelSize * scale)
}

// Reset resizes the context and paints the background. An empty diagram
// still yields a 1×1 bitmap because gg contexts cannot be zero-sized.
func (c *Canvas) Reset(width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := max(1, int(math.Ceil(width*c.scale)))
	h := max(1, int(math.Ceil(height*c.scale)))

	c.err = nil
	if c.ctx == nil {
		c.ctx = gg.NewContext(w, h)
	} else if err := c.ctx.Resize(w, h); err != nil {
		c.err = err
		return
	}
	c.ctx.ClearWithColor(gg.Hex(background))
	c.ctx.SetFont(c.face)
}

func (c *Canvas) Rect(x, y, w, h float64, fill string, stroke render.Stroke) {
	c.shape(fill, stroke, func(ctx *gg.Context) {
		ctx.DrawRectangle(x*c.scale, y*c.scale, w*c.scale, h*c.scale)
	})
}

func (c *Canvas) Circle(x, y, d float64, fill string, stroke render.Stroke) {
	r := d / 2
	c.shape(fill, stroke, func(ctx *gg.Context) {
		ctx.DrawCircle((x+r)*c.scale, (y+r)*c.scale, r*c.scale)
	})
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, stroke render.Stroke) {
	c.shape("", stroke, func(ctx *gg.Context) {
		ctx.DrawLine(x1*c.scale, y1*c.scale, x2*c.scale, y2*c.scale)
	})
}

func (c *Canvas) Text(x, y float64, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx == nil || c.err != nil {
		return
	}
	c.ctx.SetHexColor(hex("black"))
	baseline := (y + fonts.Ascent(fonts.LabelSize)) * c.scale
	c.ctx.DrawString(s, x*c.scale, baseline)
}

func (c *Canvas) TextWidth(s string) float64 {
	return fonts.Width(s, fonts.LabelSize)
}

func (c *Canvas) shape(fill string, stroke render.Stroke, path func(*gg.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx == nil || c.err != nil {
		return
	}

	path(c.ctx)
	if fill != "" {
		c.ctx.SetHexColor(hex(fill))
		if err := c.ctx.FillPreserve(); err != nil {
			c.err = err
			c.ctx.ClearPath()
			return
		}
	}
	if stroke.Color == "" {
		c.ctx.ClearPath()
		return
	}
	c.ctx.SetHexColor(hex(stroke.Color))
	c.ctx.SetStroke(toStroke(stroke, c.scale))
	if err := c.ctx.Stroke(); err != nil {
		c.err = err
	}
}

// Err returns the first drawing error since the last Reset.
func (c *Canvas) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// EncodePNG writes the current bitmap as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if c.ctx == nil {
		c.ctx = gg.NewContext(1, 1)
		c.ctx.ClearWithColor(gg.Hex(background))
	}
	return c.ctx.EncodePNG(w)
}

// Close releases the underlying context.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx == nil {
		return nil
	}
	err := c.ctx.Close()
	c.ctx = nil
	return err
}

func toStroke(s render.Stroke, scale float64) gg.Stroke {
	st := gg.DefaultStroke().WithWidth(s.Width * scale)
	if s.LineCap == render.CapRound {
		st = st.WithCap(gg.LineCapRound)
	}
	if s.IsDashed() {
		dash := make([]float64, len(s.Dash))
		for i, d := range s.Dash {
			dash[i] = d * scale
		}
		st = st.WithDashPattern(dash...)
	}
	return st
}

func hex(color string) string {
	if h, ok := namedColors[strings.ToLower(color)]; ok {
		return h
	}
	return color
}
