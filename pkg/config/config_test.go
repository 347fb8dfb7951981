package config

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/marbles/pkg/errors"
	"github.com/matzehuels/marbles/pkg/marble"
)

// isolate points the default config location at an empty temp dir and
// clears MARBLES_* variables for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, kv := range os.Environ() {
		if k, _, _ := strings.Cut(kv, "="); strings.HasPrefix(k, EnvPrefix) {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `
viz_type = "chain"
formats = ["svg", "dot"]
shapes = ["square"]

[features]
error_signals = false
shape_alternation = true
structured_values = true

[descriptions]
FluxHandle = "Handles values."
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VizType != "chain" || !reflect.DeepEqual(cfg.Formats, []string{"svg", "dot"}) {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Features.ErrorSignals || !cfg.Features.ShapeAlternation {
		t.Errorf("Features = %+v", cfg.Features)
	}
	if cfg.Descriptions["FluxHandle"] != "Handles values." {
		t.Errorf("Descriptions = %v", cfg.Descriptions)
	}
	if cfg.RemapMarker != marble.DefaultRemapMarker {
		t.Error("unset keys should keep their defaults")
	}
}

func TestLoadDefaultPathFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "marbles", "config.toml"), `remap_marker = "Filter"`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RemapMarker != "Filter" {
		t.Errorf("RemapMarker = %q, want Filter", cfg.RemapMarker)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "c.toml")
	writeFile(t, path, `formats = ["png"]`)

	t.Setenv("MARBLES_FORMATS", "svg,json")
	t.Setenv("MARBLES_FEATURES_STRUCTURED_VALUES", "false")
	t.Setenv("MARBLES_LEGACY_KEYS", "true")
	t.Setenv("MARBLES_DESCRIPTIONS", "MyOp:Does things")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"svg", "json"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.Features.StructuredValues || !cfg.Features.ErrorSignals {
		t.Errorf("Features = %+v", cfg.Features)
	}
	if !cfg.LegacyKeys || cfg.Descriptions["MyOp"] != "Does things" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", `formats = [`, errors.ErrCodeInvalidConfig},
		{"unknown key", `colour = "red"`, errors.ErrCodeInvalidConfig},
		{"bad format", `formats = ["gif"]`, errors.ErrCodeInvalidFormat},
		{"bad viz", `viz_type = "tower"`, errors.ErrCodeInvalidVizType},
		{"bad shape", `shapes = ["hexagon"]`, errors.ErrCodeInvalidShape},
		{"no shapes", `shapes = []`, errors.ErrCodeInvalidShape},
		{"bad scale", `scale = 0.0`, errors.ErrCodeInvalidConfig},
		{"bad marker", `remap_marker = ""`, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}

	_, err := Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit file error = %v", err)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Shapes = []string{"square", "circle"}
	cfg.Features.ShapeAlternation = false

	opts := cfg.PipelineOptions()
	if !reflect.DeepEqual(opts.Shapes, []marble.Shape{marble.ShapeSquare, marble.ShapeCircle}) {
		t.Errorf("Shapes = %v", opts.Shapes)
	}
	if opts.Features == nil || opts.Features.ShapeAlternation {
		t.Errorf("Features = %+v", opts.Features)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("options from defaults should validate: %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Descriptions = map[string]string{"MyOp": "Custom."}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var got Config
	if _, err := toml.Decode(buf.String(), &got); err != nil {
		t.Fatalf("decode encoded config: %v\n%s", err, buf.String())
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
