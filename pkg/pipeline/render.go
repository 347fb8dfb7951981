package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/marbles/pkg/explain"
	mio "github.com/matzehuels/marbles/pkg/io"
	"github.com/matzehuels/marbles/pkg/render"
	"github.com/matzehuels/marbles/pkg/render/nodelink"
)

// render generates output artifacts in the requested formats from the
// session surfaces (marble) or the stage chain (chain).
func (r *Runner) render(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	if opts.IsChain() {
		return r.renderChain(ctx, res, opts)
	}
	return r.renderMarble(res, opts)
}

func (r *Runner) renderMarble(res *Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)
	diagram := r.svg.Bytes()

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = diagram
		case FormatPNG:
			var buf bytes.Buffer
			err = r.raster.EncodePNG(&buf)
			data = buf.Bytes()
		case FormatPDF:
			data, err = render.ToPDF(diagram)
		case FormatJSON:
			data, err = encodeLayout(mio.NewLayout(res.TraceID, res.Events, r.recorder))
		case FormatHTML:
			data, err = renderReport(res, diagram, opts)
		default:
			return nil, fmt.Errorf("unsupported marble format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func (r *Runner) renderChain(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(res.Events, nodelink.Options{Detailed: opts.Detailed})

	var diagram []byte
	needsSVG := opts.Wants(FormatSVG) || opts.Wants(FormatHTML) || opts.Wants(FormatPDF) || opts.Wants(FormatPNG)
	if needsSVG {
		var err error
		if diagram, err = nodelink.RenderSVG(ctx, dot); err != nil {
			return nil, fmt.Errorf("render chain: %w", err)
		}
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = diagram
		case FormatPNG:
			data, err = render.ToPNG(diagram, opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(diagram)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = encodeLayout(mio.NewLayout(res.TraceID, res.Events, render.NewRecorder()))
		case FormatHTML:
			data, err = renderReport(res, diagram, opts)
		default:
			return nil, fmt.Errorf("unsupported chain format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func encodeLayout(l mio.Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := mio.WriteJSON(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderReport(res *Result, diagram []byte, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	err := explain.RenderHTML(&buf, explain.Report{
		Title:    opts.Title,
		TraceID:  res.TraceID,
		SVG:      diagram,
		Sections: res.Sections,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
