// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/gfx/debug"
)

func TestCountersRecord(t *testing.T) {
	c := New()
	c.Record(debug.OpCreateBuffer)
	c.Record(debug.OpCreateBuffer)
	c.Record(debug.OpDraw)
	c.Record(debug.NumOps) // out of range, ignored

	if got := c.Count(debug.OpCreateBuffer); got != 2 {
		t.Errorf("Count(CreateBuffer) = %d, want 2", got)
	}
	if got := c.Count(debug.OpDraw); got != 1 {
		t.Errorf("Count(Draw) = %d, want 1", got)
	}
	if got := c.Count(debug.OpDispatch); got != 0 {
		t.Errorf("Count(Dispatch) = %d, want 0", got)
	}
	if got := c.Count(debug.NumOps); got != 0 {
		t.Errorf("Count(NumOps) = %d, want 0", got)
	}
}

func TestCountersSnapshot(t *testing.T) {
	c := New()
	c.Record(debug.OpDraw)
	c.Record(debug.OpDrawIndexed)
	c.Record(debug.OpSubmit)

	s := c.Snapshot()
	if len(s.Calls) != 3 {
		t.Fatalf("len(Calls) = %d, want 3", len(s.Calls))
	}
	if s.Total() != 3 {
		t.Errorf("Total() = %d, want 3", s.Total())
	}
	if s.Draws() != 2 {
		t.Errorf("Draws() = %d, want 2", s.Draws())
	}
	ops := s.Ops()
	for i := 1; i < len(ops); i++ {
		if ops[i-1] >= ops[i] {
			t.Errorf("Ops() not sorted: %v", ops)
		}
	}

	// Snapshot does not reset.
	if got := c.Count(debug.OpDraw); got != 1 {
		t.Errorf("Count(Draw) after Snapshot = %d, want 1", got)
	}
}

func TestCountersNextFrame(t *testing.T) {
	c := New()
	c.Record(debug.OpDispatch)

	s := c.NextFrame()
	if s.Frame != 0 {
		t.Errorf("Frame = %d, want 0", s.Frame)
	}
	if s.Calls[debug.OpDispatch] != 1 {
		t.Errorf("Calls[Dispatch] = %d, want 1", s.Calls[debug.OpDispatch])
	}
	if c.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", c.Frame())
	}
	if got := c.Count(debug.OpDispatch); got != 0 {
		t.Errorf("Count(Dispatch) after NextFrame = %d, want 0", got)
	}
}

func TestCountersReset(t *testing.T) {
	c := New()
	c.Record(debug.OpWriteBuffer)
	c.Reset()
	if got := c.Count(debug.OpWriteBuffer); got != 0 {
		t.Errorf("Count after Reset = %d, want 0", got)
	}
	if c.Frame() != 0 {
		t.Errorf("Reset advanced frame to %d", c.Frame())
	}
}

func TestCountersConcurrentReaders(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 1000 {
			_ = c.Snapshot()
		}
	}()
	for range 1000 {
		c.Record(debug.OpDraw)
	}
	wg.Wait()
	if got := c.Count(debug.OpDraw); got != 1000 {
		t.Errorf("Count(Draw) = %d, want 1000", got)
	}
}

func TestSnapshotLog(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := New()
	c.Record(debug.OpDraw)
	c.Record(debug.OpSubmit)
	c.NextFrame().Log(l)

	out := buf.String()
	for _, want := range []string{"profile: frame", "draws=1", "submits=1", "op=Draw"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	// nil logger is a no-op
	Snapshot{}.Log(nil)
}
