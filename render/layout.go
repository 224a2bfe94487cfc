// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// BindingType is the kind of resource a binding slot accepts.
type BindingType uint8

const (
	BindingConstantBuffer BindingType = iota + 1
	BindingStorageBuffer
	BindingTexture
	BindingSampler
)

// String returns the binding type name.
func (t BindingType) String() string {
	switch t {
	case BindingConstantBuffer:
		return "constant buffer"
	case BindingStorageBuffer:
		return "storage buffer"
	case BindingTexture:
		return "texture"
	case BindingSampler:
		return "sampler"
	default:
		return "unknown binding"
	}
}

// BindingDescriptor describes one binding slot of a pipeline layout.
type BindingDescriptor struct {
	Type   BindingType
	Stages gputypes.ShaderStages
	Slot   uint32
}

// PipelineLayoutDescriptor describes the bindings of a pipeline.
type PipelineLayoutDescriptor struct {
	// Label is an optional debug label.
	Label string

	Bindings []BindingDescriptor
}

// ResourceHeapDescriptor binds resources to the slots of a pipeline layout.
// ResourceViews[i] is bound to PipelineLayout binding i and must be a
// Buffer, Texture or Sampler.
type ResourceHeapDescriptor struct {
	// Label is an optional debug label.
	Label string

	// PipelineLayout is required.
	PipelineLayout PipelineLayout

	ResourceViews []Resource
}
