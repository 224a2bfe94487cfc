// Package native implements render.System on top of the gogpu/wgpu HAL.
//
// A System drives one hal.Device and its hal.Queue. It can open its own
// device through a registered HAL backend (Open), adopt a device owned by a
// host application (NewFromProvider), or wrap an existing device and queue
// (New).
//
// The mapping from the renderer API to WebGPU is direct where WebGPU has an
// equivalent and returns render.ErrNotSupported otherwise: geometry and
// tessellation shaders, line loop and triangle fan topologies, pipeline
// statistics queries and MIP-map generation are not available.
//
// WGSL shader sources are compiled to SPIR-V with gogpu/naga before they
// reach the HAL.
//
// System is not safe for concurrent use.
package native
