package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/marbles/pkg/render"
)

var solid = render.Stroke{Color: "black", Width: 2, LineCap: render.CapRound}

func TestCanvasDocument(t *testing.T) {
	c := New()
	c.Reset(300, 240)
	c.SetID("diagram-1")
	c.Rect(30, 10, 175, 40, "white", solid)
	c.Circle(40, 100, 30, "#C2185B", solid)
	c.Line(0, 0, 10, 10, render.Stroke{Color: "black", Width: 2, LineCap: render.CapRound, Dash: []float64{5, 5}})
	c.Text(50, 20, "a<b")

	doc := string(c.Bytes())
	checks := []string{
		`<svg xmlns="http://www.w3.org/2000/svg" id="diagram-1" viewBox="0 0 300.0 240.0" width="300" height="240">`,
		`<rect x="30.0" y="10.0" width="175.0" height="40.0" fill="white" stroke="black" stroke-width="2" stroke-linecap="round"/>`,
		`<circle cx="55.0" cy="115.0" r="15.0" fill="#C2185B"`,
		`stroke-dasharray="5,5"`,
		`>a&lt;b</text>`,
		"</svg>\n",
	}
	for _, want := range checks {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q\n%s", want, doc)
		}
	}
}

func TestCanvasReset(t *testing.T) {
	c := New()
	c.Reset(300, 120)
	c.SetID("first")
	c.Rect(0, 0, 10, 10, "white", solid)

	c.Reset(300, 0)
	doc := string(c.Bytes())
	if strings.Contains(doc, "<rect") {
		t.Error("Reset should clear previous shapes")
	}
	if strings.Contains(doc, `id="first"`) {
		t.Error("Reset should clear the document id")
	}
	if w, h := c.Size(); w != 300 || h != 0 {
		t.Errorf("Size() = %v x %v, want 300 x 0", w, h)
	}
}

func TestStrokeAttrsNoColor(t *testing.T) {
	if got := strokeAttrs(render.Stroke{}); got != "" {
		t.Errorf("strokeAttrs(zero) = %q, want empty", got)
	}
}
