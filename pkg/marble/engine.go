package marble

import (
	"strings"

	"github.com/matzehuels/marbles/pkg/render"
	"github.com/matzehuels/marbles/pkg/trace"
)

// DefaultRemapMarker is the class substring that identifies remapping operators.
const DefaultRemapMarker = "Map"

// Features gates capabilities that were added to the diagram over time.
type Features struct {
	// ErrorSignals draws failing stages with an error X and two marbles.
	// When off every stage renders as a normal emission.
	ErrorSignals bool `toml:"error_signals" env:"ERROR_SIGNALS" json:"error_signals"`
	// ShapeAlternation advances the marble shape on remapping operators.
	// When off the first shape is always used.
	ShapeAlternation bool `toml:"shape_alternation" env:"SHAPE_ALTERNATION" json:"shape_alternation"`
	// StructuredValues renders object and array values as collapsible blocks
	// in explanations. The layout itself ignores it.
	StructuredValues bool `toml:"structured_values" env:"STRUCTURED_VALUES" json:"structured_values"`
}

// AllFeatures enables every capability.
func AllFeatures() Features {
	return Features{ErrorSignals: true, ShapeAlternation: true, StructuredValues: true}
}

// Options configures an Engine.
type Options struct {
	Shapes      []Shape
	RemapMarker string
	Features    Features
}

// DefaultOptions returns circle/square alternation on "Map" with all features.
func DefaultOptions() Options {
	return Options{
		Shapes:      append([]Shape(nil), DefaultShapes...),
		RemapMarker: DefaultRemapMarker,
		Features:    AllFeatures(),
	}
}

// Cursor is the running layout position.
type Cursor struct {
	X, Y float64
	// ShapeIndex selects the marble shape from the engine's shape list.
	ShapeIndex int
}

// Engine lays out stage events on a surface. It holds configuration only;
// every Layout call starts from a fresh cursor.
type Engine struct {
	opts Options
}

// New returns an engine. Missing shapes or marker fall back to defaults.
func New(opts Options) *Engine {
	if len(opts.Shapes) == 0 {
		opts.Shapes = append([]Shape(nil), DefaultShapes...)
	}
	if opts.RemapMarker == "" {
		opts.RemapMarker = DefaultRemapMarker
	}
	return &Engine{opts: opts}
}

// Options returns the engine configuration.
func (e *Engine) Options() Options { return e.opts }

// Layout resets the surface to 300×(120·n) and draws every event in order.
// It returns the final cursor. With no events only the reset happens.
func (e *Engine) Layout(events []trace.Event, s render.Surface) Cursor {
	c := Cursor{X: OriginX, Y: OriginY}
	s.Reset(CanvasWidth, CanvasHeight(len(events)))

	for i, ev := range events {
		if i > 0 {
			c = e.connectToOperator(c, s)
		}
		c.ShapeIndex = e.nextShape(c.ShapeIndex, ev.Class)
		kind := e.kindOf(ev)

		e.drawOperator(c, s, ev.Name)
		c = e.drawTimeline(c, s, kind)
		c = e.drawMarbles(c, s, kind)
		c = e.connectToMarbles(c, s)
	}
	return c
}

// ShapeFor returns the shape used at the given alternation index.
func (e *Engine) ShapeFor(index int) Shape {
	return e.opts.Shapes[index%len(e.opts.Shapes)]
}

// Shapes returns the marble shape of every event, in order.
func (e *Engine) Shapes(events []trace.Event) []Shape {
	out := make([]Shape, len(events))
	idx := 0
	for i, ev := range events {
		idx = e.nextShape(idx, ev.Class)
		out[i] = e.ShapeFor(idx)
	}
	return out
}

// IsRemap reports whether class names a remapping operator.
func (e *Engine) IsRemap(class string) bool {
	return strings.Contains(class, e.opts.RemapMarker)
}

func (e *Engine) nextShape(index int, class string) int {
	if !e.opts.Features.ShapeAlternation || !e.IsRemap(class) {
		return index
	}
	return (index + 1) % len(e.opts.Shapes)
}

func (e *Engine) kindOf(ev trace.Event) trace.Kind {
	if !e.opts.Features.ErrorSignals {
		return trace.KindEmit
	}
	return ev.Kind
}

func (e *Engine) connectToOperator(c Cursor, s render.Surface) Cursor {
	c.Y += stepToOperatorY
	drawLinks(c, s)
	c.X += stepToOperatorX
	c.Y += ConnectorLen
	return c
}

func (e *Engine) drawOperator(c Cursor, s render.Surface, label string) {
	s.Rect(c.X, c.Y, BoxWidth, BoxHeight, boxFill, Solid)
	s.Text(c.X+(BoxWidth-s.TextWidth(label))/2, c.Y+LabelOffsetY, label)
}

func (e *Engine) drawTimeline(c Cursor, s render.Surface, kind trace.Kind) Cursor {
	c.X += stepToTimelineX
	c.Y += stepToTimelineY
	x, y := c.X, c.Y
	end := x + TimelineLength

	s.Line(x, y, end, y, Solid)
	s.Line(end-ArrowLength, y+ArrowSpread, end, y, Solid)
	s.Line(end-ArrowLength, y-ArrowSpread, end, y, Solid)

	if kind == trace.KindError {
		s.Line(x+ErrorOffset, y+ErrorSize/2, x+ErrorOffset+ErrorSize, y-ErrorSize/2, Cross)
		s.Line(x+ErrorOffset+ErrorSize, y+ErrorSize/2, x+ErrorOffset, y-ErrorSize/2, Cross)
	} else {
		s.Line(x+TickOffset, y+TickHalf, x+TickOffset, y-TickHalf, Solid)
	}
	return c
}

func (e *Engine) drawMarbles(c Cursor, s render.Surface, kind trace.Kind) Cursor {
	c.Y += stepToMarblesY
	shape := e.ShapeFor(c.ShapeIndex)

	n := len(MarbleSlots)
	if kind == trace.KindError {
		n--
	}
	for i := range n {
		x := c.X + MarbleSlots[i]
		switch shape {
		case ShapeSquare:
			s.Rect(x, c.Y, MarbleWidth, MarbleWidth, MarbleColors[i], Solid)
		default:
			s.Circle(x, c.Y, MarbleWidth, MarbleColors[i], Solid)
		}
	}
	return c
}

func (e *Engine) connectToMarbles(c Cursor, s render.Surface) Cursor {
	c.Y += stepToLinksY
	drawLinks(c, s)
	return c
}

// drawLinks draws three dashed links of ConnectorLen ending in arrowheads,
// hanging down from the cursor's y.
func drawLinks(c Cursor, s render.Surface) {
	for _, off := range ConnectorOffsets {
		cx := c.X + MarbleWidth + off
		tip := c.Y + ConnectorLen
		s.Line(cx, tip, cx, c.Y, Dashed)
		s.Line(cx-ArrowheadSize, tip-ArrowheadSize, cx, tip, Solid)
		s.Line(cx+ArrowheadSize, tip-ArrowheadSize, cx, tip, Solid)
	}
}
