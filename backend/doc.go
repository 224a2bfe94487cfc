// Package backend is the registry of render system implementations.
//
// Backends register a [Factory] under a name from an init function, and
// applications select one at runtime by name or by priority:
//
//	import _ "github.com/gogpu/gfx/backend/native"
//
//	// Open a specific backend
//	sys, err := backend.Open(backend.Vulkan)
//
//	// Or the best one that opens on this machine
//	sys, name, err := backend.OpenDefault()
//
// The returned [render.System] is usually wrapped by the debug layer during
// development:
//
//	rs := debug.New(sys, debug.WithDebugger(debug.NewLogDebugger(logger)))
//
// # Available Backends
//
// backend/native registers "vulkan", "metal", "dx12", "gl" and "noop". Each
// opens the gogpu/wgpu HAL backend of the same API, which must itself be
// linked in (for example with a blank import of github.com/gogpu/wgpu/hal/vulkan).
// "noop" opens the HAL no-op device and works everywhere.
package backend
