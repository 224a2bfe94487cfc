// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// AttachmentType is the role of a render target attachment.
type AttachmentType uint8

const (
	AttachmentColor AttachmentType = iota
	AttachmentDepth
	AttachmentDepthStencil
	AttachmentStencil
)

// String returns the attachment type name.
func (t AttachmentType) String() string {
	switch t {
	case AttachmentColor:
		return "color"
	case AttachmentDepth:
		return "depth"
	case AttachmentDepthStencil:
		return "depth-stencil"
	case AttachmentStencil:
		return "stencil"
	default:
		return "unknown"
	}
}

// AttachmentDescriptor describes one render target attachment.
//
// Texture may be nil, in which case the backend allocates an attachment
// of the target resolution itself.
type AttachmentDescriptor struct {
	Type AttachmentType

	// Texture is the attachment texture, or nil.
	Texture Texture

	// MipLevel is the MIP level rendered into.
	MipLevel uint32

	// Layer is the array layer (or cube face) rendered into.
	Layer uint32
}

// RenderTargetDescriptor describes an offscreen render target.
type RenderTargetDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width and Height are the target resolution.
	Width  uint32
	Height uint32

	// Samples is the sample count. Zero and one mean no multi-sampling.
	Samples uint32

	// Attachments are the color and depth/stencil attachments.
	Attachments []AttachmentDescriptor
}

// RenderContextDescriptor describes a render context.
type RenderContextDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width and Height are the resolution of the default framebuffer.
	Width  uint32
	Height uint32

	// Format is the color format. Zero selects the backend default.
	Format gputypes.TextureFormat

	// Samples is the sample count. Zero and one mean no multi-sampling.
	Samples uint32

	// VSync requests vertical synchronization on presentation.
	VSync bool
}
