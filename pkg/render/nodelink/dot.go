package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/marbles/pkg/render"
	"github.com/matzehuels/marbles/pkg/trace"
)

// Options configures chain diagram generation.
type Options struct {
	// Detailed adds the operator class and value count to node labels.
	// When false, only the stage name is shown.
	Detailed bool
}

// ToDOT converts decoded stages to Graphviz DOT. Stages are chained in
// order; the result can be rendered with [RenderSVG], [RenderPDF] or
// [RenderPNG].
func ToDOT(events []trace.Event, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=16, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("\n")

	for i, ev := range events {
		attrs := fmtAttrs(ev, fmtLabel(ev, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := 1; i < len(events); i++ {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(i-1), nodeID(i))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "stage-" + strconv.Itoa(i) }

func fmtLabel(ev trace.Event, detailed bool) string {
	if !detailed {
		return ev.Name
	}
	values := "values"
	if len(ev.Values) == 1 {
		values = "value"
	}
	return fmt.Sprintf("%s\n%s\n%d %s", ev.Name, ev.Class, len(ev.Values), values)
}

func fmtAttrs(ev trace.Event, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if ev.IsError() {
		attrs = append(attrs, "fillcolor=\"#ffcdd2\"", "color=red", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a plain
// pixel-sized one so the chain embeds like the marble canvas.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
