package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/marbles/pkg/errors"
	"github.com/matzehuels/marbles/pkg/marble"
	"github.com/matzehuels/marbles/pkg/observability"
)

const sample = `[{"results": {
	"[FluxRange,source(range(1, 3))]": [{"event":"EMIT","result":1},{"event":"EMIT","result":2}],
	"[FluxMapFuseable,map]":           [{"event":"EMIT","result":{"n":1}},{"event":"EMIT","result":{"n":2}}],
	"[FluxHandle,handle]":             [{"event":"ERROR","result":"boom"}]
}}]`

func TestGenerateSVG(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	res, err := r.Generate(context.Background(), []byte(sample), Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if res.Stats.StageCount != 3 || res.Stats.ValueCount != 5 || res.Stats.ErrorCount != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.DecodeErr != nil {
		t.Errorf("DecodeErr = %v", res.DecodeErr)
	}
	if len(res.Sections) != 3 || !res.Sections[1].Structured {
		t.Errorf("Sections = %+v", res.Sections)
	}

	doc := string(res.Artifacts[FormatSVG])
	if !strings.Contains(doc, `height="360"`) {
		t.Errorf("svg should be 360 high:\n%s", doc)
	}
	if got := strings.Count(doc, `width="175.0"`); got != 3 {
		t.Errorf("got %d operator boxes, want 3", got)
	}
	if !strings.Contains(doc, `id="marbles-`+res.TraceID[:8]+`"`) {
		t.Error("svg should carry the trace id")
	}
}

func TestGenerateMalformed(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()
	ctx := context.Background()

	if _, err := r.Generate(ctx, []byte(sample), Options{}); err != nil {
		t.Fatal(err)
	}

	res, err := r.Generate(ctx, []byte(`{not json`), Options{Formats: []string{"svg", "html", "json"}})
	if err != nil {
		t.Fatalf("malformed input should not fail generation: %v", err)
	}
	if len(res.Events) != 0 || len(res.Sections) != 0 {
		t.Errorf("malformed input produced %d events", len(res.Events))
	}
	if !errors.Is(res.DecodeErr, errors.ErrCodeMalformedTrace) {
		t.Errorf("DecodeErr = %v", res.DecodeErr)
	}

	doc := string(res.Artifacts[FormatSVG])
	if strings.Contains(doc, "<rect") || !strings.Contains(doc, `height="0"`) {
		t.Errorf("malformed input should render an empty diagram, got:\n%s", doc)
	}
	if strings.Contains(string(res.Artifacts[FormatHTML]), "explanation-container") {
		t.Error("malformed input should render no explanation panel")
	}
}

func TestGenerateIdempotent(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()
	ctx := context.Background()
	opts := Options{Formats: []string{"svg", "json"}}

	a, err := r.Generate(ctx, []byte(sample), opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Generate(ctx, []byte(`[{"results":{"[X,x]":[{"result":1}]}}]`), opts); err != nil {
		t.Fatal(err)
	}
	b, err := r.Generate(ctx, []byte(sample), opts)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range opts.Formats {
		if !bytes.Equal(a.Artifacts[f], b.Artifacts[f]) {
			t.Errorf("%s output differs between identical renders", f)
		}
	}
	if a.TraceID != b.TraceID {
		t.Error("trace id should be deterministic")
	}
}

func TestGenerateJSON(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	res, err := r.Generate(context.Background(), []byte(sample), Options{Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		TraceID    string           `json:"trace_id"`
		Height     float64          `json:"height"`
		Stages     []map[string]any `json:"stages"`
		Primitives []map[string]any `json:"primitives"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("decode json artifact: %v", err)
	}
	if doc.TraceID != res.TraceID || doc.Height != 360 || len(doc.Stages) != 3 {
		t.Errorf("json artifact = %+v", doc)
	}
	if len(doc.Primitives) == 0 {
		t.Error("json artifact should contain primitives")
	}
}

func TestGeneratePNG(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	res, err := r.Generate(context.Background(), []byte(sample), Options{Formats: []string{"png"}, Scale: 1})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(res.Artifacts[FormatPNG]))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 360 {
		t.Errorf("png bounds = %v, want 300x360", b)
	}
}

func TestGenerateHTML(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	res, err := r.Generate(context.Background(), []byte(sample), Options{Formats: []string{"html"}, Title: "Demo"})
	if err != nil {
		t.Fatal(err)
	}
	page := string(res.Artifacts[FormatHTML])
	for _, want := range []string{"<title>Demo</title>", "<svg", "Pipeline Output", "collapsible"} {
		if !strings.Contains(page, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestGenerateChainDOT(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	res, err := r.Generate(context.Background(), []byte(sample), Options{
		VizType:  VizTypeChain,
		Formats:  []string{"dot"},
		Detailed: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	dot := string(res.Artifacts[FormatDOT])
	if strings.Count(dot, "->") != 2 || !strings.Contains(dot, "FluxHandle") {
		t.Errorf("dot = %s", dot)
	}
}

func TestGenerateFeatureFlags(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	res, err := r.Generate(context.Background(), []byte(sample), Options{
		Formats:  []string{"svg"},
		Features: &marble.Features{},
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := string(res.Artifacts[FormatSVG])
	if strings.Contains(doc, `stroke="red"`) {
		t.Error("error signals disabled should not draw the error glyph")
	}
	if res.Sections[1].Structured {
		t.Error("structured values disabled should render inline")
	}
}

func TestGenerateInvalidOptions(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	_, err := r.Generate(context.Background(), []byte(sample), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	decodes, layouts, renders int
	decodeErr                 error
}

func (h *countingHooks) OnDecodeComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.decodes++
	h.decodeErr = err
}

func (h *countingHooks) OnLayoutStart(context.Context, string, int) { h.layouts++ }
func (h *countingHooks) OnRenderStart(context.Context, []string)     { h.renders++ }

func TestGenerateHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil)
	defer r.Close()
	if _, err := r.Generate(context.Background(), []byte(`nope`), Options{}); err != nil {
		t.Fatal(err)
	}

	if hooks.decodes != 1 || hooks.layouts != 1 || hooks.renders != 1 {
		t.Errorf("hook calls = %+v", hooks)
	}
	if hooks.decodeErr == nil {
		t.Error("decode hook should receive the strict error")
	}
}

func TestGenerateLogger(t *testing.T) {
	var session, perCall bytes.Buffer

	r := NewRunner(log.New(&session))
	defer r.Close()
	if _, err := r.Generate(context.Background(), []byte(sample), Options{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(session.String(), "decoded trace") {
		t.Errorf("session logger output = %q, want decode line", session.String())
	}

	session.Reset()
	if _, err := r.Generate(context.Background(), []byte(sample), Options{Logger: log.New(&perCall)}); err != nil {
		t.Fatal(err)
	}
	if session.Len() != 0 || !strings.Contains(perCall.String(), "computed layout") {
		t.Errorf("per-call logger should win: session %q, call %q", session.String(), perCall.String())
	}

	quiet := NewRunner(nil)
	defer quiet.Close()
	if quiet.Logger == nil {
		t.Error("nil logger should be replaced by a discard logger")
	}
}
