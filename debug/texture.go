// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"github.com/gogpu/gfx/render"
)

// CreateTexture implements render.System.
func (r *RenderSystem) CreateTexture(desc *render.TextureDescriptor, image *render.SrcImageDescriptor) (render.Texture, error) {
	const op = OpCreateTexture
	if desc == nil {
		return nil, r.nilArgument(op, "texture descriptor")
	}
	if r.sink.validating() {
		r.validateTextureDesc(op, desc)
		if image != nil {
			r.validateImageDataSize(op, mipTexels(desc, 0),
				image.Format, image.DataType, len(image.Data), "texture")
		}
	}

	native, err := r.instance.CreateTexture(desc, image)
	if err != nil {
		return nil, err
	}
	h := r.textures.insert(textureEntry{native: native, desc: *desc})
	r.sink.count(op)
	slogger().Debug("texture created",
		"type", desc.Type.String(), "width", desc.Width, "height", desc.Height)
	return &Texture{ref: ref{owner: r, h: h}, typ: desc.Type}, nil
}

// CreateTextureArray implements render.System.
func (r *RenderSystem) CreateTextureArray(textures []render.Texture) (render.TextureArray, error) {
	const op = OpCreateTextureArray
	if len(textures) == 0 {
		return nil, r.nilArgument(op, "texture array")
	}
	natives := make([]render.Texture, len(textures))
	members := make([]*Texture, len(textures))
	for i, t := range textures {
		d, e, err := r.texture(op, t)
		if err != nil {
			return nil, err
		}
		natives[i] = e.native
		members[i] = d
	}

	native, err := r.instance.CreateTextureArray(natives)
	if err != nil {
		return nil, err
	}
	h := r.textureArrays.insert(textureArrayEntry{native: native, textures: members})
	r.sink.count(op)
	return &TextureArray{ref: ref{owner: r, h: h}}, nil
}

// ReleaseTexture implements render.System.
func (r *RenderSystem) ReleaseTexture(tex render.Texture) error {
	const op = OpReleaseTexture
	d, e, err := r.texture(op, tex)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseTexture(e.native); err != nil {
		return err
	}
	r.textures.remove(d.h)
	r.sink.count(op)
	slogger().Debug("texture released", "type", d.typ.String())
	return nil
}

// ReleaseTextureArray implements render.System.
func (r *RenderSystem) ReleaseTextureArray(arr render.TextureArray) error {
	const op = OpReleaseTextureArray
	d, e, err := r.textureArray(op, arr)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseTextureArray(e.native); err != nil {
		return err
	}
	r.textureArrays.remove(d.h)
	r.sink.count(op)
	return nil
}

// WriteTexture implements render.System.
func (r *RenderSystem) WriteTexture(tex render.Texture, region *render.TextureRegion, image *render.SrcImageDescriptor) error {
	const op = OpWriteTexture
	_, e, err := r.texture(op, tex)
	if err != nil {
		return err
	}
	if region == nil {
		return r.nilArgument(op, "texture region")
	}
	if image == nil {
		return r.nilArgument(op, "source image descriptor")
	}
	if r.sink.validating() {
		if r.validateMipLevel(op, e, region.MipLevel) {
			r.validateTextureRegion(op, e, region)
		}
		ext := region.Extent
		r.validateImageDataSize(op,
			uint64(ext.Width)*uint64(ext.Height)*uint64(ext.DepthOrArrayLayers),
			image.Format, image.DataType, len(image.Data), "texture region")
	}

	if err := r.instance.WriteTexture(e.native, region, image); err != nil {
		return err
	}
	r.sink.count(op)
	return nil
}

// ReadTexture implements render.System.
func (r *RenderSystem) ReadTexture(tex render.Texture, mipLevel uint32, image *render.DstImageDescriptor) error {
	const op = OpReadTexture
	_, e, err := r.texture(op, tex)
	if err != nil {
		return err
	}
	if image == nil {
		return r.nilArgument(op, "destination image descriptor")
	}
	if r.sink.validating() && r.validateMipLevel(op, e, mipLevel) {
		r.validateImageDataSize(op, mipTexels(&e.desc, mipLevel),
			image.Format, image.DataType, len(image.Data), "texture")
	}

	if err := r.instance.ReadTexture(e.native, mipLevel, image); err != nil {
		return err
	}
	r.sink.count(op)
	return nil
}

// GenerateMips implements render.System.
func (r *RenderSystem) GenerateMips(tex render.Texture) error {
	const op = OpGenerateMips
	_, e, err := r.texture(op, tex)
	if err != nil {
		return err
	}
	if r.sink.validating() {
		r.validateGenerateMips(op, e)
	}

	if err := r.instance.GenerateMips(e.native); err != nil {
		return err
	}
	r.sink.count(op)
	return nil
}

// GenerateMipRange implements render.System.
func (r *RenderSystem) GenerateMipRange(tex render.Texture, baseMipLevel, numMipLevels, baseArrayLayer, numArrayLayers uint32) error {
	const op = OpGenerateMipRange
	_, e, err := r.texture(op, tex)
	if err != nil {
		return err
	}
	if r.sink.validating() {
		r.validateGenerateMips(op, e)
		r.validateMipRange(op, e, baseMipLevel, numMipLevels)
		r.validateArrayLayerRange(op, e, baseArrayLayer, numArrayLayers)
	}

	if err := r.instance.GenerateMipRange(e.native, baseMipLevel, numMipLevels, baseArrayLayer, numArrayLayers); err != nil {
		return err
	}
	r.sink.count(op)
	return nil
}
