// Package marble lays out marble diagrams for decoded pipeline traces.
//
// # Layout
//
// Every stage occupies a fixed 120-unit vertical slot on a 300-unit wide
// canvas. For each stage the [Engine] draws, in order:
//
//  1. Connectors from the previous stage's marbles (all but the first stage)
//  2. The operator box with the stage name centered inside it
//  3. The timeline arrow, ending in a completion tick or a red error X
//  4. Up to three marbles on the timeline
//  5. Connectors rising from the marbles toward the next stage
//
// Each step reads and advances a single [Cursor]. The steps must run in this
// order; the engine encodes them as one sequential walk rather than separate
// calls.
//
// # Marble Shapes
//
// Marbles are drawn with one of a fixed set of shapes. Each stage whose
// operator class contains the remap marker ("Map" by default) advances the
// shape, wrapping around, so consecutive value-reshaping operators are
// visually distinguishable. The selected shape depends only on the classes
// of the stages up to and including the current one.
//
// # Features
//
// Three capabilities can be toggled through [Features]: error signals,
// shape alternation and structured value explanations. The engine consumes
// the first two; the third is read by the explanation renderer.
package marble
