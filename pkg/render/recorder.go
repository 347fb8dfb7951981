package render

import "github.com/matzehuels/marbles/pkg/fonts"

// Kind identifies a recorded primitive.
type Kind string

const (
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindLine   Kind = "line"
	KindText   Kind = "text"
)

// Primitive is one recorded drawing call. Rectangles and circles use X, Y, W
// and H (W == H == diameter for circles); lines use X, Y, X2 and Y2.
type Primitive struct {
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	Fill   string  `json:"fill,omitempty"`
	Stroke *Stroke `json:"stroke,omitempty"`
	Text   string  `json:"text,omitempty"`
}

// Recorder is a [Surface] that keeps every drawing call in order.
type Recorder struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Primitives []Primitive `json:"primitives"`
	Resets     int         `json:"-"`
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Reset(width, height float64) {
	r.Width, r.Height = width, height
	r.Primitives = r.Primitives[:0]
	r.Resets++
}

func (r *Recorder) Rect(x, y, w, h float64, fill string, stroke Stroke) {
	r.add(Primitive{Kind: KindRect, X: x, Y: y, W: w, H: h, Fill: fill, Stroke: &stroke})
}

func (r *Recorder) Circle(x, y, d float64, fill string, stroke Stroke) {
	r.add(Primitive{Kind: KindCircle, X: x, Y: y, W: d, H: d, Fill: fill, Stroke: &stroke})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, stroke Stroke) {
	r.add(Primitive{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2, Stroke: &stroke})
}

func (r *Recorder) Text(x, y float64, s string) {
	r.add(Primitive{Kind: KindText, X: x, Y: y, Text: s})
}

func (r *Recorder) TextWidth(s string) float64 {
	return fonts.Width(s, fonts.LabelSize)
}

func (r *Recorder) add(p Primitive) {
	if p.Stroke != nil && len(p.Stroke.Dash) > 0 {
		p.Stroke.Dash = append([]float64(nil), p.Stroke.Dash...)
	}
	r.Primitives = append(r.Primitives, p)
}

// Filter returns the recorded primitives matching pred, in drawing order.
func (r *Recorder) Filter(pred func(Primitive) bool) []Primitive {
	var out []Primitive
	for _, p := range r.Primitives {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// Count returns how many primitives of the given kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	return len(r.Filter(func(p Primitive) bool { return p.Kind == kind }))
}
