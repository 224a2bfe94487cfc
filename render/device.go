// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// Backends that run on a device owned by someone else (for example a gogpu
// window) accept a DeviceHandle instead of opening their own device. The
// host keeps ownership of the device and queue.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// gfx-specific name for the interface while maintaining full compatibility
// with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// RendererID identifies the native API a render system is built on.
type RendererID uint8

const (
	// RendererUndefined is the zero value.
	RendererUndefined RendererID = iota

	// RendererNull is a backend that executes nothing (tests, headless validation).
	RendererNull

	// RendererOpenGL is desktop OpenGL.
	RendererOpenGL

	// RendererOpenGLES is OpenGL ES.
	RendererOpenGLES

	// RendererDirect3D11 is Direct3D 11.
	RendererDirect3D11

	// RendererDirect3D12 is Direct3D 12.
	RendererDirect3D12

	// RendererVulkan is Vulkan.
	RendererVulkan

	// RendererMetal is Metal.
	RendererMetal

	// RendererWebGPU is a browser WebGPU implementation.
	RendererWebGPU
)

var rendererNames = [...]string{
	RendererUndefined:  "Undefined",
	RendererNull:       "Null",
	RendererOpenGL:     "OpenGL",
	RendererOpenGLES:   "OpenGLES",
	RendererDirect3D11: "Direct3D11",
	RendererDirect3D12: "Direct3D12",
	RendererVulkan:     "Vulkan",
	RendererMetal:      "Metal",
	RendererWebGPU:     "WebGPU",
}

// String returns the renderer name.
func (id RendererID) String() string {
	if int(id) < len(rendererNames) {
		return rendererNames[id]
	}
	return fmt.Sprintf("RendererID(%d)", id)
}

// IsOpenGL reports whether the renderer is one of the OpenGL variants.
func (id RendererID) IsOpenGL() bool {
	return id == RendererOpenGL || id == RendererOpenGLES
}

// RendererFromBackend maps a WebGPU HAL backend to a renderer ID.
func RendererFromBackend(b gputypes.Backend) RendererID {
	switch b {
	case gputypes.BackendEmpty:
		return RendererNull
	case gputypes.BackendVulkan:
		return RendererVulkan
	case gputypes.BackendMetal:
		return RendererMetal
	case gputypes.BackendDX12:
		return RendererDirect3D12
	case gputypes.BackendGL:
		return RendererOpenGL
	case gputypes.BackendBrowserWebGPU:
		return RendererWebGPU
	default:
		return RendererUndefined
	}
}

// RendererInfo describes the renderer and the device it runs on.
type RendererInfo struct {
	// RendererName is the API name, e.g. "Vulkan".
	RendererName string

	// DeviceName is the adapter name reported by the driver.
	DeviceName string

	// VendorName is the adapter vendor.
	VendorName string

	// ShadingLanguageName is the shader language the backend consumes.
	ShadingLanguageName string
}

// Configuration holds backend settings that can change after creation.
type Configuration struct {
	// DefaultFenceTimeout is used by CommandQueue.WaitFence when the caller
	// passes a zero timeout. Zero means wait without limit.
	DefaultFenceTimeout time.Duration
}
