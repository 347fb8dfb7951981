package marble

import "github.com/matzehuels/marbles/pkg/render"

// Canvas geometry.
const (
	CanvasWidth = 300.0
	StageHeight = 120.0

	OriginX = 30.0
	OriginY = 10.0
)

// Operator box.
const (
	BoxWidth     = 175.0
	BoxHeight    = 40.0
	LabelOffsetY = 10.0
)

// Timeline and markers.
const (
	TimelineLength = 250.0
	ArrowLength    = 10.0
	ArrowSpread    = 5.0
	TickOffset     = 210.0
	TickHalf       = 5.0
	ErrorOffset    = 150.0
	ErrorSize      = 30.0
)

// Marbles and connectors.
const (
	MarbleWidth   = 30.0
	ConnectorLen  = 25.0
	ArrowheadSize = 5.0
)

// Cursor steps between drawing phases.
const (
	stepToOperatorY = 55.0
	stepToOperatorX = 20.0
	stepToTimelineX = -20.0
	stepToTimelineY = 80.0
	stepToMarblesY  = -15.0
	stepToLinksY    = -25.0
)

var (
	// MarbleSlots are the marble x offsets from the timeline start.
	MarbleSlots = [3]float64{30, 90, 150}
	// MarbleColors are the fixed fill colors for each slot.
	MarbleColors = [3]string{"#C2185B", "#00796B", "#FBC02D"}
	// ConnectorOffsets are the link x offsets, relative to the marble origin.
	ConnectorOffsets = [3]float64{15, 75, 135}
)

// Paint specs shared by every stage.
var (
	Solid  = render.Stroke{Color: "black", Width: 2, LineCap: render.CapRound}
	Dashed = render.Stroke{Color: "black", Width: 2, LineCap: render.CapRound, Dash: []float64{5, 5}}
	Cross  = render.Stroke{Color: "red", Width: 5}
)

const boxFill = "white"

// CanvasHeight returns the canvas height for n stages.
func CanvasHeight(n int) float64 {
	return StageHeight * float64(n)
}
