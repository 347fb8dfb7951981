package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/marbles/pkg/render"
	"github.com/matzehuels/marbles/pkg/trace"
)

// Layout is a rendered diagram as data.
type Layout struct {
	TraceID    string             `json:"trace_id,omitempty"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Stages     []trace.Event      `json:"stages"`
	Primitives []render.Primitive `json:"primitives"`
}

// NewLayout captures the recorder's current drawing together with the
// stages it was drawn from.
func NewLayout(id string, events []trace.Event, rec *render.Recorder) Layout {
	l := Layout{
		TraceID:    id,
		Width:      rec.Width,
		Height:     rec.Height,
		Stages:     events,
		Primitives: append([]render.Primitive(nil), rec.Primitives...),
	}
	if l.Stages == nil {
		l.Stages = []trace.Event{}
	}
	if l.Primitives == nil {
		l.Primitives = []render.Primitive{}
	}
	return l
}

// WriteJSON encodes a layout as indented JSON and writes it to w.
func WriteJSON(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a layout previously written by [WriteJSON].
func ReadJSON(r io.Reader) (Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode: %w", err)
	}
	return l, nil
}

// ExportJSON writes a layout to a JSON file at path.
func ExportJSON(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(l, f)
}
