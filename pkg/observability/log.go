package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline events as debug-level structured log lines.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) OnDecodeStart(_ context.Context, traceID string, size int) {
	h.debug("decode start", "trace", traceID, "bytes", size)
}

func (h LogHooks) OnDecodeComplete(_ context.Context, traceID string, stages int, d time.Duration, err error) {
	if err != nil {
		h.debug("decode failed, rendering empty diagram", "trace", traceID, "error", err, "duration", d)
		return
	}
	h.debug("decode complete", "trace", traceID, "stages", stages, "duration", d)
}

func (h LogHooks) OnLayoutStart(_ context.Context, vizType string, stages int) {
	h.debug("layout start", "viz", vizType, "stages", stages)
}

func (h LogHooks) OnLayoutComplete(_ context.Context, vizType string, d time.Duration, err error) {
	h.debug("layout complete", "viz", vizType, "duration", d, "error", err)
}

func (h LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.debug("render start", "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.debug("render complete", "formats", formats, "duration", d, "error", err)
}

func (h LogHooks) debug(msg string, kv ...any) {
	if h.Logger != nil {
		h.Logger.Debug(msg, kv...)
	}
}
