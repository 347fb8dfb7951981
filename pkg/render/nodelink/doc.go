// Package nodelink renders a decoded trace as a stage-chain diagram.
//
// # Overview
//
// The chain view is the "chain" visualization type: every stage becomes a
// Graphviz box connected to the next stage by an arrow. It trades the
// timeline detail of a marble diagram for a compact overview of long
// pipelines. Failing stages are filled red.
//
// # Usage
//
// Convert the stages to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(events, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include the operator class and value count
//
// Rendering uses github.com/goccy/go-graphviz, a WebAssembly build of
// Graphviz, so no system installation is required for SVG. PDF and PNG go
// through render.ToPDF / render.ToPNG and need rsvg-convert.
package nodelink
