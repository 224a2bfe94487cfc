// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package debug provides a validating wrapper around a render.System.
//
// [New] wraps a render system in a [RenderSystem] that implements the same
// interface. Every call is validated against the wrapped system's
// capabilities and the tracked state of the resources involved, then
// forwarded unchanged. Validation failures are posted to a [Debugger];
// successful calls are counted by a [Profiler].
//
// # Handles
//
// Every resource the RenderSystem returns is a debug handle (*Buffer,
// *Texture, ...) that owns the native handle of the wrapped system. Debug
// handles are entries in generation-checked tables, so using a handle after
// it was released fails with [ErrReleased] instead of reaching the backend.
//
// # Severity
//
// Reports are errors or warnings. An error means the result of the call is
// undefined; a warning means the call is well-defined but likely a mistake.
// In both cases the call is still forwarded. Only fatal preconditions (a
// foreign or released handle, a missing shader program) stop a call, and
// those are returned as Go errors.
//
// # Example
//
//	rec := &debug.Recorder{}
//	rs := debug.New(backend, debug.WithDebugger(rec))
//	_, _ = rs.CreateBuffer(&render.BufferDescriptor{Type: render.BufferTypeVertex, Size: 0}, nil)
//	for _, r := range rec.Errors() {
//	    fmt.Println(r)
//	}
//
// Without a debugger validation is skipped entirely; handle translation and
// fatal precondition checks still run.
package debug
