package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/marbles/pkg/explain"
	"github.com/matzehuels/marbles/pkg/marble"
	"github.com/matzehuels/marbles/pkg/observability"
	"github.com/matzehuels/marbles/pkg/render"
	"github.com/matzehuels/marbles/pkg/render/raster"
	"github.com/matzehuels/marbles/pkg/render/svg"
	"github.com/matzehuels/marbles/pkg/trace"
)

// Runner is a diagram generation session. It owns one SVG canvas, one raster
// canvas and one primitive recorder, all reset at the start of every
// generation. Generate calls are serialized, so two renders never share a
// surface.
type Runner struct {
	Logger *log.Logger

	mu       sync.Mutex
	svg      *svg.Canvas
	raster   *raster.Canvas
	recorder *render.Recorder
}

// NewRunner creates a session. If logger is nil, log output is discarded.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Logger:   logger,
		svg:      svg.New(),
		raster:   raster.New(),
		recorder: render.NewRecorder(),
	}
}

// Close releases the raster canvas.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.raster.Close()
}

// Generate runs decode → layout → explain → render for one raw trace.
//
// A malformed trace is not an error: the result has zero stages, DecodeErr
// says why, and every artifact shows an empty diagram.
func (r *Runner) Generate(ctx context.Context, raw []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	r.mu.Lock()
	defer r.mu.Unlock()

	hooks := observability.Pipeline()
	result := &Result{
		TraceID:   trace.Fingerprint(raw).String(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	hooks.OnDecodeStart(ctx, result.TraceID, len(raw))
	events, err := trace.Parse(raw, opts.DecodeOptions()...)
	if err != nil {
		logger.Debug("malformed trace", "trace", result.TraceID, "error", err)
		events, result.DecodeErr = nil, err
	}
	result.Events = events
	result.Stats = newStats(events)
	result.Stats.DecodeTime = time.Since(decodeStart)
	hooks.OnDecodeComplete(ctx, result.TraceID, len(events), result.Stats.DecodeTime, err)

	logger.Info("decoded trace",
		"stages", result.Stats.StageCount,
		"values", result.Stats.ValueCount,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, opts.VizType, len(events))
	r.layout(events, opts, result.TraceID)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, opts.VizType, result.Stats.LayoutTime, nil)

	logger.Info("computed layout",
		"viz", opts.VizType,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Explain
	result.Sections = explain.Build(events, opts.ExplainOptions())

	// Stage 4: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := r.render(ctx, result, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// layout draws the marble diagram onto the session surfaces. The chain view
// is built from events at render time, but the surfaces are still reset so
// no stale marble diagram survives.
func (r *Runner) layout(events []trace.Event, opts Options, traceID string) {
	surfaces := []render.Surface{r.svg, r.recorder}
	if opts.Wants(FormatPNG) && opts.IsMarble() {
		r.raster.SetScale(opts.Scale)
		surfaces = append(surfaces, r.raster)
	}
	if opts.IsChain() {
		events = nil
	}

	marble.New(opts.EngineOptions()).Layout(events, render.Multi(surfaces...))
	r.svg.SetID(diagramID(traceID))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func diagramID(traceID string) string {
	if len(traceID) > 8 {
		traceID = traceID[:8]
	}
	return "marbles-" + traceID
}
