// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package profile provides a counting debug.Profiler.
//
// Counters keeps one atomic counter per debug.Op. The render thread
// increments counters through the debug layer while another goroutine may
// read them with Count or Snapshot.
//
//	c := profile.New()
//	rs := debug.New(native, debug.WithProfiler(c))
//	// ... render a frame ...
//	stats := c.NextFrame()
//	stats.Log(logger)
package profile
