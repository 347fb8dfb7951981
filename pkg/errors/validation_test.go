package errors

import (
	"strings"
	"testing"
)

func TestValidateMarker(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "Map", false},
		{"fuseable", "MapFuseable", false},

		{"empty", "", true},
		{"too long", strings.Repeat("M", 65), true},
		{"space", "Flat Map", true},
		{"tab", "Map\t", true},
		{"control char", "Map\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMarker(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMarker(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateMarker(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "trace.svg", false},
		{"nested", "out/trace.png", false},
		{"absolute", "/tmp/trace.html", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "trace\x00.svg", true},
		{"newline", "trace\n.svg", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
