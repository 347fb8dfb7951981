// Package render provides the drawing surfaces marble diagrams are laid out on.
//
// # Overview
//
// The layout engine in [marble] is written against the [Surface] interface:
// an immediate-mode canvas with rectangles, circles, lines and text, all
// positioned in absolute coordinates. This package provides:
//
//   - The [Surface] interface and the [Stroke] paint settings
//   - [Recorder], a surface that records [Primitive] values (tests, JSON export)
//   - [Multi], which fans one layout out to several surfaces
//   - Generic format conversion (SVG to PDF/PNG) via rsvg-convert
//
// Concrete canvases live in subpackages:
//
//   - [svg]: a reusable SVG document canvas
//   - [raster]: a reusable bitmap canvas on gogpu/gg, encoded as PNG
//   - [nodelink]: a Graphviz view of the stage chain (not a Surface)
//
// # Surface Lifecycle
//
// Canvases are constructed once and reused. Every render begins with
// [Surface.Reset], which clears previous content and sets the new size, so
// repeated renders never show stale drawings.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	doc := canvas.Bytes()
//	pdf, err := render.ToPDF(doc)
//	png, err := render.ToPNG(doc, 2.0)  // 2x scale
//
// [marble]: github.com/matzehuels/marbles/pkg/marble
// [svg]: github.com/matzehuels/marbles/pkg/render/svg
// [raster]: github.com/matzehuels/marbles/pkg/render/raster
// [nodelink]: github.com/matzehuels/marbles/pkg/render/nodelink
package render
