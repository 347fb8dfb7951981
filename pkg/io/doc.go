// Package io reads trace payloads and exports recorded diagram layouts.
//
// # Import
//
// Use [ImportTrace] to read a trace from a file path ("-" reads standard
// input), or [ReadTrace] to read from any io.Reader. Both return the raw
// payload; decoding is left to the trace package so that malformed input can
// still be rendered as an empty diagram.
//
//	raw, err := io.ImportTrace("trace.json")
//	events := trace.Decode(raw)
//
// Payloads larger than [MaxTraceSize] are rejected.
//
// # Layout Export
//
// A [Layout] captures a rendered diagram as data: the decoded stages plus
// every drawing primitive in order, with absolute coordinates. It is the
// "json" output format and lets external tools redraw a diagram without
// re-implementing the layout.
//
//	{
//	  "trace_id": "9a3c...",
//	  "width": 300,
//	  "height": 240,
//	  "stages": [{"name": "map", "class": "FluxMapFuseable", "kind": "EMIT", ...}],
//	  "primitives": [{"kind": "rect", "x": 30, "y": 10, "w": 175, "h": 40, ...}]
//	}
//
// Use [WriteJSON] / [ExportJSON] to write a layout and [ReadJSON] to read
// one back.
package io
