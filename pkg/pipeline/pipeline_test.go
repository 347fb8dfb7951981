package pipeline

import (
	"testing"

	"github.com/matzehuels/marbles/pkg/errors"
	"github.com/matzehuels/marbles/pkg/marble"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"html", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats([]string{"svg", "invalid"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"marble", false},
		{"chain", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType = %q, want %q", opts.VizType, DefaultVizType)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.RemapMarker != marble.DefaultRemapMarker || len(opts.Shapes) != 2 {
		t.Errorf("engine defaults = %q %v", opts.RemapMarker, opts.Shapes)
	}
	if opts.Features == nil || *opts.Features != marble.AllFeatures() {
		t.Errorf("Features = %v, want all enabled", opts.Features)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"svg", "json"}, VizType: VizTypeChain}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if first.VizType != opts.VizType || len(first.Formats) != len(opts.Formats) || first.Scale != opts.Scale {
		t.Error("second call should not change options")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad viz", Options{VizType: "tower"}, errors.ErrCodeInvalidVizType},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"dot on marble", Options{Formats: []string{"dot"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
		{"bad marker", Options{RemapMarker: "has space"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	chain := Options{VizType: VizTypeChain, Formats: []string{"dot"}}
	if err := chain.ValidateAndSetDefaults(); err != nil {
		t.Errorf("dot on chain should pass: %v", err)
	}
}

func TestOptionsIsMarble(t *testing.T) {
	tests := []struct {
		vizType string
		marble  bool
		chain   bool
	}{
		{"", true, false},
		{VizTypeMarble, true, false},
		{VizTypeChain, false, true},
	}
	for _, tt := range tests {
		opts := Options{VizType: tt.vizType}
		if opts.IsMarble() != tt.marble || opts.IsChain() != tt.chain {
			t.Errorf("VizType %q: IsMarble=%v IsChain=%v", tt.vizType, opts.IsMarble(), opts.IsChain())
		}
	}
}

func TestOptionsEngineAndExplain(t *testing.T) {
	opts := Options{Features: &marble.Features{ShapeAlternation: true}}
	opts.SetDefaults()

	eo := opts.EngineOptions()
	if eo.Features.ErrorSignals || !eo.Features.ShapeAlternation {
		t.Errorf("EngineOptions().Features = %+v", eo.Features)
	}
	if opts.ExplainOptions().StructuredValues {
		t.Error("ExplainOptions should follow the StructuredValues feature")
	}
	if opts.DecodeOptions() != nil {
		t.Error("DecodeOptions should be empty without legacy keys")
	}
	opts.LegacyKeys = true
	if len(opts.DecodeOptions()) != 1 {
		t.Error("LegacyKeys should add a decode option")
	}
}
