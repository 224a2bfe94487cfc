// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/gogpu/gfx/debug"
)

// Counters counts debug layer operations per frame.
type Counters struct {
	counts [debug.NumOps]atomic.Uint64
	frame  atomic.Uint64

	// frameStart is the UnixNano time the current frame started.
	frameStart atomic.Int64
}

var _ debug.Profiler = (*Counters)(nil)

// New creates a Counters at frame zero.
func New() *Counters {
	c := &Counters{}
	c.frameStart.Store(time.Now().UnixNano())
	return c
}

// Record implements debug.Profiler.
func (c *Counters) Record(op debug.Op) {
	if op < debug.NumOps {
		c.counts[op].Add(1)
	}
}

// Count returns the number of times op was recorded in the current frame.
func (c *Counters) Count(op debug.Op) uint64 {
	if op >= debug.NumOps {
		return 0
	}
	return c.counts[op].Load()
}

// Frame returns the current frame number.
func (c *Counters) Frame() uint64 { return c.frame.Load() }

// Snapshot returns the non-zero counters of the current frame.
func (c *Counters) Snapshot() Snapshot {
	s := Snapshot{
		Frame:    c.frame.Load(),
		Duration: time.Duration(time.Now().UnixNano() - c.frameStart.Load()),
		Calls:    make(map[debug.Op]uint64),
	}
	for op := range c.counts {
		if n := c.counts[op].Load(); n > 0 {
			s.Calls[debug.Op(op)] = n
		}
	}
	return s
}

// Reset zeroes all counters without advancing the frame.
func (c *Counters) Reset() {
	for op := range c.counts {
		c.counts[op].Store(0)
	}
}

// NextFrame returns the snapshot of the finished frame, zeroes the counters
// and advances the frame number.
func (c *Counters) NextFrame() Snapshot {
	s := Snapshot{
		Frame:    c.frame.Load(),
		Duration: time.Duration(time.Now().UnixNano() - c.frameStart.Swap(time.Now().UnixNano())),
		Calls:    make(map[debug.Op]uint64),
	}
	for op := range c.counts {
		if n := c.counts[op].Swap(0); n > 0 {
			s.Calls[debug.Op(op)] = n
		}
	}
	c.frame.Add(1)
	return s
}

// Snapshot is a copy of the counters of one frame.
type Snapshot struct {
	Frame    uint64
	Duration time.Duration

	// Calls maps each operation recorded at least once to its count.
	Calls map[debug.Op]uint64
}

// Total returns the sum of all counts.
func (s Snapshot) Total() uint64 {
	var n uint64
	for _, v := range s.Calls {
		n += v
	}
	return n
}

// Draws returns the number of draw commands of any kind.
func (s Snapshot) Draws() uint64 {
	return s.Calls[debug.OpDraw] + s.Calls[debug.OpDrawIndexed] +
		s.Calls[debug.OpDrawInstanced] + s.Calls[debug.OpDrawIndexedInstanced]
}

// Ops returns the recorded operations in Op order.
func (s Snapshot) Ops() []debug.Op {
	ops := make([]debug.Op, 0, len(s.Calls))
	for op := range s.Calls {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Log writes the snapshot to l at info level, one summary line followed by
// one debug line per operation.
func (s Snapshot) Log(l *slog.Logger) {
	if l == nil {
		return
	}
	l.Info("profile: frame",
		"frame", s.Frame,
		"duration", s.Duration,
		"calls", s.Total(),
		"draws", s.Draws(),
		"dispatches", s.Calls[debug.OpDispatch],
		"submits", s.Calls[debug.OpSubmit])
	for _, op := range s.Ops() {
		l.Debug("profile: op", "frame", s.Frame, "op", op.String(), "count", s.Calls[op])
	}
}
