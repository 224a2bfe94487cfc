// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/render"
)

// CreateRenderTarget implements render.System.
func (r *RenderSystem) CreateRenderTarget(desc *render.RenderTargetDescriptor) (render.RenderTarget, error) {
	const op = OpCreateRenderTarget
	if desc == nil {
		return nil, r.nilArgument(op, "render target descriptor")
	}

	nd := *desc
	nd.Attachments = make([]render.AttachmentDescriptor, len(desc.Attachments))
	entries := make([]*textureEntry, len(desc.Attachments))
	for i, a := range desc.Attachments {
		nd.Attachments[i] = a
		if a.Texture == nil {
			continue
		}
		_, e, err := r.texture(op, a.Texture)
		if err != nil {
			return nil, err
		}
		nd.Attachments[i].Texture = e.native
		entries[i] = e
	}
	if r.sink.validating() {
		r.validateRenderTargetDesc(op, desc, entries)
	}

	native, err := r.instance.CreateRenderTarget(&nd)
	if err != nil {
		return nil, err
	}
	e := renderTargetEntry{native: native, desc: *desc}
	e.desc.Attachments = append([]render.AttachmentDescriptor(nil), desc.Attachments...)
	h := r.renderTargets.insert(e)
	r.sink.count(op)
	slogger().Debug("render target created",
		"width", desc.Width, "height", desc.Height, "attachments", len(desc.Attachments))
	return &RenderTarget{ref: ref{owner: r, h: h}}, nil
}

func (r *RenderSystem) validateRenderTargetDesc(op Op, desc *render.RenderTargetDescriptor, textures []*textureEntry) {
	r.requireFeature(op, render.FeatureRenderTargets)

	limits := &r.caps.Limits
	if desc.Width == 0 || desc.Height == 0 {
		r.sink.post(op, InvalidArgument, "render target resolution must not be empty")
	}
	if limit := limits.MaxTextureDimension2D; desc.Width > limit || desc.Height > limit {
		r.sink.post(op, InvalidArgument,
			"render target resolution exceeded limit (%dx%d specified but limit is %d)", desc.Width, desc.Height, limit)
	}
	if desc.Samples > 1 {
		r.requireFeature(op, render.FeatureMultiSampleTextures)
		if desc.Samples > limits.MaxSamples {
			r.sink.post(op, InvalidArgument,
				"number of samples exceeded limit (%d specified but limit is %d)", desc.Samples, limits.MaxSamples)
		}
	}
	if len(desc.Attachments) == 0 {
		r.sink.post(op, PointlessOperation, "render target has no attachments")
		return
	}

	var colors, depths uint32
	for i, a := range desc.Attachments {
		if a.Type == render.AttachmentColor {
			colors++
		} else {
			depths++
		}
		e := textures[i]
		if e == nil {
			continue
		}
		if a.MipLevel >= e.mipLevels() {
			r.sink.post(op, InvalidArgument,
				"attachment %d: mip level out of bounds (%d specified but limit is %d)", i, a.MipLevel, lastIndex(e.mipLevels()))
			continue
		}
		layers := e.layers() * textureFaces(&e.desc)
		if e.desc.Type == render.Texture3D {
			layers = e.desc.MipExtent(a.MipLevel).DepthOrArrayLayers
		}
		if a.Layer >= layers {
			r.sink.post(op, InvalidArgument,
				"attachment %d: array layer out of bounds (%d specified but limit is %d)", i, a.Layer, lastIndex(layers))
		}
		if e.desc.Usage != 0 && !e.desc.Usage.Contains(gputypes.TextureUsageRenderAttachment) {
			r.sink.post(op, InvalidArgument,
				"attachment %d: texture was not created with RenderAttachment usage", i)
		}
		if ext := e.desc.MipExtent(a.MipLevel); ext.Width != desc.Width || ext.Height != desc.Height {
			r.sink.post(op, ImproperArgument,
				"attachment %d: texture size %dx%d does not match render target resolution %dx%d",
				i, ext.Width, ext.Height, desc.Width, desc.Height)
		}
	}
	if limit := limits.MaxColorAttachments; colors > limit {
		r.sink.post(op, InvalidArgument,
			"too many color attachments (%d specified but limit is %d)", colors, limit)
	}
	if depths > 1 {
		r.sink.post(op, InvalidArgument, "render target must not have more than one depth-stencil attachment")
	}
}

// ReleaseRenderTarget implements render.System.
func (r *RenderSystem) ReleaseRenderTarget(rt render.RenderTarget) error {
	const op = OpReleaseRenderTarget
	d, e, err := r.renderTarget(op, rt)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseRenderTarget(e.native); err != nil {
		return err
	}
	r.renderTargets.remove(d.h)
	r.sink.count(op)
	return nil
}

// targetInfo is what pipelines and render passes need to know about a
// render target or render context.
type targetInfo struct {
	native  render.RenderTarget
	samples uint32
}

// anyTarget translates a render target or render context handle.
func (r *RenderSystem) anyTarget(op Op, v render.RenderTarget) (targetInfo, error) {
	if c, ok := v.(*RenderContext); ok {
		_, e, err := r.renderContext(op, c)
		if err != nil {
			return targetInfo{}, err
		}
		return targetInfo{native: e.native, samples: max(e.desc.Samples, 1)}, nil
	}
	_, e, err := r.renderTarget(op, v)
	if err != nil {
		return targetInfo{}, err
	}
	return targetInfo{native: e.native, samples: max(e.desc.Samples, 1)}, nil
}
