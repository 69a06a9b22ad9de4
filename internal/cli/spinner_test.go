package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerWritesLabel(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Laying out svg...")
	time.Sleep(200 * time.Millisecond)
	s.stop()

	if s.cancelled() {
		t.Error("stop should not report cancellation")
	}
	out := buf.String()
	if !strings.Contains(out, "Laying out svg...") {
		t.Errorf("spinner output missing label: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner should clear its line on stop: %q", out)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			var buf bytes.Buffer
			s := startSpinner(ctx, &buf, "waiting")
			select {
			case <-s.done:
			case <-time.After(time.Second):
				t.Fatal("spinner did not stop when its context ended")
			}
			if !s.cancelled() {
				t.Error("cancelled() = false after context ended")
			}
			s.stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "twice")
	s.stop()
	s.stop()
}
