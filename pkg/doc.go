// Package pkg provides the core libraries for marbles diagram generation.
//
// # Overview
//
// Marbles turns the execution trace of a reactive pipeline into a marble
// diagram: one labeled box per stage, a timeline beneath it, the values the
// stage emitted drawn as marbles, and dashed connectors into the next stage.
// The pkg directory is organized into these areas:
//
//  1. [trace] - Decoding raw traces into ordered stage events
//  2. [marble] - The layout engine that draws a diagram onto a surface
//  3. [render] - Drawing surfaces (SVG, raster, recorder) and the chain view
//  4. [explain] - Per-stage explanations and the HTML report
//  5. [pipeline] - Orchestration (decode → layout → explain → render)
//  6. [config] - Layered configuration (defaults, TOML, environment)
//
// # Architecture
//
// The typical data flow through marbles:
//
//	Raw trace (JSON)
//	       ↓
//	  [trace] package (fail-soft decode)
//	       ↓
//	  [marble] package (layout onto render.Surface)
//	       ↓
//	  [render/svg], [render/raster], [render.Recorder]
//	       ↓
//	  SVG/PNG/PDF/JSON/HTML output
//
// # Quick Start
//
// Draw a diagram directly:
//
//	import (
//	    "github.com/matzehuels/marbles/pkg/marble"
//	    "github.com/matzehuels/marbles/pkg/render/svg"
//	    "github.com/matzehuels/marbles/pkg/trace"
//	)
//
//	events := trace.Decode(raw)
//	canvas := svg.New()
//	marble.New(marble.DefaultOptions()).Layout(events, canvas)
//	os.WriteFile("diagram.svg", canvas.Bytes(), 0o644)
//
// Or run the whole pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	defer runner.Close()
//	result, err := runner.Generate(ctx, raw, pipeline.Options{
//	    Formats: []string{"svg", "html"},
//	})
//
// # Error Handling
//
// Malformed traces are not errors: they decode to zero stages and render an
// empty diagram. Coded errors from [errors] report invalid options,
// configuration and I/O problems.
package pkg
