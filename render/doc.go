// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the client-facing render API shared by every backend.
//
// The package contains no GPU code. It declares the descriptors used to
// create resources, the capability snapshot a backend reports, the handle
// interfaces returned by a backend, and the [System] interface that ties
// them together.
//
// # Core Interfaces
//
//   - System: resource creation and release, data transfer, capability queries
//   - CommandBuffer: command recording (render passes, draws, dispatches)
//   - CommandQueue: submission and fence synchronization
//
// # Implementations
//
//   - backend/native: HAL-backed system on gogpu/wgpu
//   - debug: validating wrapper around any System
//   - render/rendertest: in-memory recording system for tests
//
// # Handles
//
// Every object a System returns implements [Resource] and reports its
// [ResourceType]. A handle is only valid for the System that created it and
// only until it is released through the matching Release method.
//
// # Capabilities
//
// [RenderingCaps] is an immutable snapshot of backend features and limits.
// Numeric limits reuse [gputypes.Limits] and extend it with the values the
// WebGPU limit set does not cover.
package render
