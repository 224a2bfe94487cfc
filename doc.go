// Package gfx is a cross-backend real-time graphics and compute abstraction
// with a validating debug layer.
//
// # Overview
//
// Client code talks to a single render API: render contexts, command
// buffers, buffers, textures, samplers, shaders, pipelines, queries and
// fences. The API is defined by [render.System] and implemented by concrete
// backends. The debug layer in package debug wraps any [render.System] and
// validates every call against the backend's capabilities before forwarding it.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gfx/backend/native"
//	    "github.com/gogpu/gfx/debug"
//	    "github.com/gogpu/gfx/profile"
//	    _ "github.com/gogpu/wgpu/hal/noop"
//	)
//
//	sys, err := native.Open(gputypes.BackendEmpty)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sys.Close()
//
//	rec := &debug.Recorder{}
//	counters := profile.New()
//	rs := debug.New(sys, debug.WithDebugger(rec), debug.WithProfiler(counters))
//
//	buf, err := rs.CreateBuffer(&render.BufferDescriptor{
//	    Type: render.BufferTypeConstant,
//	    Size: 48,
//	}, nil)
//	// rec.Warnings() now holds "constant buffer size is out of pack alignment".
//
// # Architecture
//
// The module is organized into:
//   - render: descriptors, capability snapshot and the System contract
//   - debug: the validating wrapper (shadow tables, rules, diagnostic sink)
//   - profile: per-operation call counters
//   - backend/native: a System on top of the gogpu/wgpu HAL
//   - render/rendertest: a recording System for tests
//
// # Logging
//
// gfx is silent by default. Use [SetLogger] to route lifecycle logs to a
// [log/slog] logger. Validation reports are delivered to the debugger given
// to the debug layer, not to the logger.
package gfx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
