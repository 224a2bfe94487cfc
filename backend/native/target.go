package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/render"
)

// renderTarget is an offscreen render target or render context.
type renderTarget struct {
	kind          render.ResourceType
	width, height uint32
	samples       uint32

	colorViews   []hal.TextureView
	colorFormats []gputypes.TextureFormat
	depthView    hal.TextureView
	depthFormat  gputypes.TextureFormat

	// views and textures allocated by the target itself
	ownedViews    []hal.TextureView
	ownedTextures []*texture

	released bool
}

func (t *renderTarget) ResourceType() render.ResourceType { return t.kind }

// CreateRenderTarget implements render.System. Attachments without a
// texture are allocated at the target resolution.
func (s *System) CreateRenderTarget(desc *render.RenderTargetDescriptor) (render.RenderTarget, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateRenderTarget: %w", render.ErrInvalidDescriptor)
	}
	rt := &renderTarget{
		kind:    render.ResourceTypeRenderTarget,
		width:   desc.Width,
		height:  desc.Height,
		samples: max(desc.Samples, 1),
	}
	for i, a := range desc.Attachments {
		if err := s.attach(rt, desc.Label, a); err != nil {
			s.destroyTarget(rt)
			return nil, fmt.Errorf("native: attachment %d: %w", i, err)
		}
	}
	return rt, nil
}

func attachmentFormat(t render.AttachmentType) gputypes.TextureFormat {
	switch t {
	case render.AttachmentDepth:
		return gputypes.TextureFormatDepth32Float
	case render.AttachmentDepthStencil, render.AttachmentStencil:
		return gputypes.TextureFormatDepth24PlusStencil8
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

func (s *System) attach(rt *renderTarget, label string, a render.AttachmentDescriptor) error {
	var view hal.TextureView
	var format gputypes.TextureFormat
	if a.Texture == nil {
		typ := render.Texture2D
		if rt.samples > 1 {
			typ = render.Texture2DMS
		}
		t, err := s.newTexture(&render.TextureDescriptor{
			Label:     label,
			Type:      typ,
			Format:    attachmentFormat(a.Type),
			Usage:     gputypes.TextureUsageRenderAttachment,
			Width:     rt.width,
			Height:    rt.height,
			MipLevels: 1,
			Samples:   rt.samples,
		})
		if err != nil {
			return err
		}
		rt.ownedTextures = append(rt.ownedTextures, t)
		view, format = t.view, t.format
	} else {
		t, err := s.texture(a.Texture)
		if err != nil {
			return err
		}
		view, err = s.device.CreateTextureView(t.raw, &hal.TextureViewDescriptor{
			Label:           label,
			Format:          t.format,
			Dimension:       gputypes.TextureViewDimension2D,
			Aspect:          gputypes.TextureAspectAll,
			BaseMipLevel:    a.MipLevel,
			MipLevelCount:   1,
			BaseArrayLayer:  a.Layer,
			ArrayLayerCount: 1,
		})
		if err != nil {
			return fmt.Errorf("native: create attachment view: %w", err)
		}
		rt.ownedViews = append(rt.ownedViews, view)
		format = t.format
	}
	if a.Type == render.AttachmentColor {
		rt.colorViews = append(rt.colorViews, view)
		rt.colorFormats = append(rt.colorFormats, format)
	} else {
		rt.depthView, rt.depthFormat = view, format
	}
	return nil
}

func (s *System) destroyTarget(rt *renderTarget) {
	for _, v := range rt.ownedViews {
		s.device.DestroyTextureView(v)
	}
	for _, t := range rt.ownedTextures {
		s.destroyTexture(t)
	}
	rt.ownedViews, rt.ownedTextures = nil, nil
	rt.released = true
}

// ReleaseRenderTarget implements render.System.
func (s *System) ReleaseRenderTarget(r render.RenderTarget) error {
	rt, err := s.renderTarget(r, render.ResourceTypeRenderTarget)
	if err != nil {
		return err
	}
	s.destroyTarget(rt)
	return nil
}

// CreateRenderContext implements render.System. Without a surface the
// context renders into an offscreen color texture.
func (s *System) CreateRenderContext(desc *render.RenderContextDescriptor) (render.RenderContext, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateRenderContext: %w", render.ErrInvalidDescriptor)
	}
	rt := &renderTarget{
		kind:    render.ResourceTypeRenderContext,
		width:   desc.Width,
		height:  desc.Height,
		samples: max(desc.Samples, 1),
	}
	format := desc.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	typ := render.Texture2D
	if rt.samples > 1 {
		typ = render.Texture2DMS
	}
	t, err := s.newTexture(&render.TextureDescriptor{
		Label:     desc.Label,
		Type:      typ,
		Format:    format,
		Usage:     gputypes.TextureUsageRenderAttachment,
		Width:     desc.Width,
		Height:    desc.Height,
		MipLevels: 1,
		Samples:   rt.samples,
	})
	if err != nil {
		return nil, err
	}
	rt.ownedTextures = []*texture{t}
	rt.colorViews = []hal.TextureView{t.view}
	rt.colorFormats = []gputypes.TextureFormat{format}
	logger().Debug("render context created",
		"width", desc.Width, "height", desc.Height, "format", format.String())
	return rt, nil
}

// ReleaseRenderContext implements render.System.
func (s *System) ReleaseRenderContext(r render.RenderContext) error {
	rt, err := s.renderTarget(r, render.ResourceTypeRenderContext)
	if err != nil {
		return err
	}
	s.destroyTarget(rt)
	return nil
}

// renderTarget resolves a target of the given kind. ResourceTypeUndefined
// accepts both kinds.
func (s *System) renderTarget(r render.RenderTarget, kind render.ResourceType) (*renderTarget, error) {
	rt, ok := r.(*renderTarget)
	if !ok || rt == nil || (kind != render.ResourceTypeUndefined && rt.kind != kind) {
		return nil, foreign("render target", r)
	}
	if rt.released {
		return nil, ErrReleased
	}
	return rt, nil
}
