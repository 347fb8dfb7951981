package render

import (
	"strconv"
	"strings"
)

// Line caps understood by every surface.
const (
	CapButt  = "butt"
	CapRound = "round"
)

// Stroke describes how an outline or a line is painted.
type Stroke struct {
	Color   string    `json:"color"`
	Width   float64   `json:"width"`
	LineCap string    `json:"linecap,omitempty"`
	Dash    []float64 `json:"dash,omitempty"`
}

// IsDashed reports whether the stroke has a dash pattern.
func (s Stroke) IsDashed() bool { return len(s.Dash) > 0 }

// DashArray formats the dash pattern as an SVG stroke-dasharray ("5,5").
func (s Stroke) DashArray() string {
	parts := make([]string, len(s.Dash))
	for i, d := range s.Dash {
		parts[i] = strconv.FormatFloat(d, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Surface is an immediate-mode drawing target. All coordinates are absolute;
// shapes are positioned by the top-left corner of their bounding box.
type Surface interface {
	// Reset clears all content and sets the surface size.
	Reset(width, height float64)
	// Rect draws a w×h rectangle.
	Rect(x, y, w, h float64, fill string, stroke Stroke)
	// Circle draws a circle of diameter d.
	Circle(x, y, d float64, fill string, stroke Stroke)
	// Line draws a straight segment from (x1,y1) to (x2,y2).
	Line(x1, y1, x2, y2 float64, stroke Stroke)
	// Text draws a single-line label whose text box starts at (x,y).
	Text(x, y float64, s string)
	// TextWidth returns the rendered width of s, used to center labels.
	TextWidth(s string) float64
}

// Multi returns a surface that duplicates every drawing call to all of the
// given surfaces. Text width queries are answered by the first one.
func Multi(surfaces ...Surface) Surface {
	all := make([]Surface, 0, len(surfaces))
	for _, s := range surfaces {
		if m, ok := s.(multiSurface); ok {
			all = append(all, m...)
		} else if s != nil {
			all = append(all, s)
		}
	}
	return multiSurface(all)
}

type multiSurface []Surface

func (m multiSurface) Reset(width, height float64) {
	for _, s := range m {
		s.Reset(width, height)
	}
}

func (m multiSurface) Rect(x, y, w, h float64, fill string, stroke Stroke) {
	for _, s := range m {
		s.Rect(x, y, w, h, fill, stroke)
	}
}

func (m multiSurface) Circle(x, y, d float64, fill string, stroke Stroke) {
	for _, s := range m {
		s.Circle(x, y, d, fill, stroke)
	}
}

func (m multiSurface) Line(x1, y1, x2, y2 float64, stroke Stroke) {
	for _, s := range m {
		s.Line(x1, y1, x2, y2, stroke)
	}
}

func (m multiSurface) Text(x, y float64, str string) {
	for _, s := range m {
		s.Text(x, y, str)
	}
}

func (m multiSurface) TextWidth(str string) float64 {
	if len(m) == 0 {
		return 0
	}
	return m[0].TextWidth(str)
}
