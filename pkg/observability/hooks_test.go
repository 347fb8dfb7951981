package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnDecodeStart(ctx, "trace", 128)
	p.OnDecodeComplete(ctx, "trace", 3, time.Second, nil)
	p.OnLayoutStart(ctx, "marble", 3)
	p.OnLayoutComplete(ctx, "marble", time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset should restore NoopPipelineHooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := LogHooks{Logger: logger}
	ctx := context.Background()

	h.OnDecodeComplete(ctx, "abc", 2, time.Millisecond, nil)
	h.OnDecodeComplete(ctx, "abc", 0, time.Millisecond, errors.New("bad key"))
	h.OnRenderStart(ctx, []string{"svg", "png"})

	out := buf.String()
	for _, want := range []string{"decode complete", "stages=2", "decode failed", "bad key", "render start"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	// A nil logger is a no-op.
	LogHooks{}.OnLayoutStart(ctx, "marble", 1)
}

type testPipelineHooks struct{ NoopPipelineHooks }
