// Package pipeline provides the diagram generation pipeline for marbles.
//
// This package implements the complete decode → layout → explain → render
// pipeline used by the CLI. By centralizing this logic, every entry point
// produces identical diagrams for the same trace.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Decode: turn the raw trace into stage events (fail-soft)
//  2. Layout: draw the marble diagram or build the stage chain
//  3. Explain: build per-stage explanation sections
//  4. Render: produce artifacts in the requested formats
//
// Malformed traces never fail generation: they decode to zero stages and
// render an empty diagram. Only invalid options and output conversion
// problems are reported as errors.
//
// # Usage
//
// Create a Runner once and reuse it; it owns the drawing surfaces:
//
//	runner := pipeline.NewRunner(logger)
//	defer runner.Close()
//
//	result, err := runner.Generate(ctx, raw, pipeline.Options{
//	    Formats: []string{"svg", "html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/marbles/pkg/errors"
	"github.com/matzehuels/marbles/pkg/explain"
	"github.com/matzehuels/marbles/pkg/marble"
	"github.com/matzehuels/marbles/pkg/render/raster"
	"github.com/matzehuels/marbles/pkg/trace"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library
// =============================================================================

// Visualization types.
const (
	VizTypeMarble = "marble"
	VizTypeChain  = "chain"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeMarble

// DefaultScale is the default PNG pixel density.
const DefaultScale = raster.DefaultScale

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatHTML = "html"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatHTML: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeMarble: true,
	VizTypeChain:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one generation.
type Options struct {
	// Decode options
	LegacyKeys bool `json:"legacy_keys,omitempty"`

	// Layout options
	VizType     string           `json:"viz_type,omitempty"`
	Shapes      []marble.Shape   `json:"shapes,omitempty"`
	RemapMarker string           `json:"remap_marker,omitempty"`
	Features    *marble.Features `json:"features,omitempty"` // nil enables every feature

	// Explain options
	Descriptions map[string]string `json:"descriptions,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Title    string   `json:"title,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // chain labels include class and value count

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of one generation.
type Result struct {
	// TraceID is the deterministic fingerprint of the raw payload.
	TraceID string

	// Events are the decoded stages; empty for malformed input.
	Events []trace.Event

	// DecodeErr explains why Events is empty, when the payload was malformed.
	DecodeErr error

	// Sections holds the explanation of every stage.
	Sections []explain.Section

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StageCount int
	ValueCount int
	ErrorCount int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

func newStats(events []trace.Event) Stats {
	var s Stats
	s.StageCount = len(events)
	for _, ev := range events {
		s.ValueCount += len(ev.Values)
		if ev.IsError() {
			s.ErrorCount++
		}
	}
	return s
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, html, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: marble, chain)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and fills in defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.IsMarble() && slices.Contains(o.Formats, FormatDOT) {
		return errors.New(errors.ErrCodeInvalidFormat, "format %q is only available for the %s view", FormatDOT, VizTypeChain)
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive")
	}
	if o.RemapMarker != "" {
		if err := errors.ValidateMarker(o.RemapMarker); err != nil {
			return err
		}
	}
	return nil
}

// SetDefaults fills in zero values.
func (o *Options) SetDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if len(o.Shapes) == 0 {
		o.Shapes = slices.Clone(marble.DefaultShapes)
	}
	if o.RemapMarker == "" {
		o.RemapMarker = marble.DefaultRemapMarker
	}
	if o.Features == nil {
		f := marble.AllFeatures()
		o.Features = &f
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsMarble returns true if this is a marble diagram.
func (o *Options) IsMarble() bool {
	return o.VizType == "" || o.VizType == VizTypeMarble
}

// IsChain returns true if this is a stage-chain diagram.
func (o *Options) IsChain() bool {
	return o.VizType == VizTypeChain
}

// EngineOptions returns the layout engine configuration.
func (o *Options) EngineOptions() marble.Options {
	f := marble.AllFeatures()
	if o.Features != nil {
		f = *o.Features
	}
	return marble.Options{Shapes: o.Shapes, RemapMarker: o.RemapMarker, Features: f}
}

// ExplainOptions returns the explanation configuration.
func (o *Options) ExplainOptions() explain.Options {
	return explain.Options{
		StructuredValues: o.EngineOptions().Features.StructuredValues,
		Descriptions:     o.Descriptions,
	}
}

// DecodeOptions returns the trace decoding options.
func (o *Options) DecodeOptions() []trace.Option {
	if o.LegacyKeys {
		return []trace.Option{trace.WithLegacyKeys()}
	}
	return nil
}

// Wants reports whether format was requested.
func (o *Options) Wants(format string) bool {
	return slices.Contains(o.Formats, format)
}
