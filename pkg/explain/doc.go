// Package explain builds the textual companion to a marble diagram.
//
// For every decoded stage, [Build] produces a [Section] holding the stage
// name, a human-readable description of the operator class and the values
// the stage emitted. Scalar values are joined inline; structured values
// (objects and arrays) become individually collapsible [Block] entries with
// a compact title and a pretty-printed body.
//
// Descriptions come from a static table of reactive operators ([Describe]),
// which callers may extend or override through [Options.Descriptions].
//
// [RenderHTML] combines an SVG diagram and its sections into a standalone
// HTML page. An empty section list renders the page without a diagram or
// explanation panel.
package explain
