package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/render"
)

// copyPitchAlignment is the row alignment of texture-to-buffer copies.
const copyPitchAlignment = 256

// texture wraps a HAL texture and its default view.
type texture struct {
	raw      hal.Texture
	view     hal.TextureView
	desc     render.TextureDescriptor
	format   gputypes.TextureFormat
	layers   uint32 // physical array layers (cube faces included)
	released bool
}

func (t *texture) ResourceType() render.ResourceType { return render.ResourceTypeTexture }
func (t *texture) TextureType() render.TextureType   { return t.desc.Type }

type textureArray struct {
	textures []*texture
	released bool
}

func (a *textureArray) ResourceType() render.ResourceType { return render.ResourceTypeTextureArray }

// textureDimension maps a texture type to the HAL dimension. 1D arrays are
// stored as 2D textures with a height of one.
func textureDimension(t render.TextureType) gputypes.TextureDimension {
	switch t {
	case render.Texture1D:
		return gputypes.TextureDimension1D
	case render.Texture3D:
		return gputypes.TextureDimension3D
	default:
		return gputypes.TextureDimension2D
	}
}

func viewDimension(t render.TextureType) gputypes.TextureViewDimension {
	switch t {
	case render.Texture1D:
		return gputypes.TextureViewDimension1D
	case render.Texture3D:
		return gputypes.TextureViewDimension3D
	case render.TextureCube:
		return gputypes.TextureViewDimensionCube
	case render.TextureCubeArray:
		return gputypes.TextureViewDimensionCubeArray
	case render.Texture1DArray, render.Texture2DArray, render.Texture2DMSArray:
		return gputypes.TextureViewDimension2DArray
	default:
		return gputypes.TextureViewDimension2D
	}
}

// physicalLayers returns the HAL array layer count of a descriptor.
func physicalLayers(desc *render.TextureDescriptor) uint32 {
	switch desc.Type {
	case render.TextureCube:
		return 6
	case render.TextureCubeArray:
		return max(desc.Layers, 1) * 6
	case render.Texture1DArray, render.Texture2DArray, render.Texture2DMSArray:
		return max(desc.Layers, 1)
	default:
		return 1
	}
}

func textureExtent(desc *render.TextureDescriptor) hal.Extent3D {
	e := desc.MipExtent(0)
	depth := physicalLayers(desc)
	if desc.Type == render.Texture3D {
		depth = e.DepthOrArrayLayers
	}
	return hal.Extent3D{Width: e.Width, Height: e.Height, DepthOrArrayLayers: depth}
}

// CreateTexture implements render.System.
func (s *System) CreateTexture(desc *render.TextureDescriptor, image *render.SrcImageDescriptor) (render.Texture, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateTexture: %w", render.ErrInvalidDescriptor)
	}
	t, err := s.newTexture(desc)
	if err != nil {
		return nil, err
	}
	if image != nil && len(image.Data) > 0 {
		e := desc.MipExtent(0)
		region := render.TextureRegion{Extent: gputypes.Extent3D{
			Width:              e.Width,
			Height:             e.Height,
			DepthOrArrayLayers: textureExtent(desc).DepthOrArrayLayers,
		}}
		if err := s.writeTexture(t, &region, image); err != nil {
			s.destroyTexture(t)
			return nil, err
		}
	}
	return t, nil
}

func (s *System) newTexture(desc *render.TextureDescriptor) (*texture, error) {
	format := desc.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	usage := desc.Usage | gputypes.TextureUsageCopyDst | gputypes.TextureUsageCopySrc
	if usage&gputypes.TextureUsageRenderAttachment == 0 || !format.IsDepthStencil() {
		usage |= gputypes.TextureUsageTextureBinding
	}
	raw, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          textureExtent(desc),
		MipLevelCount: max(desc.MipLevelCount(), 1),
		SampleCount:   max(desc.Samples, 1),
		Dimension:     textureDimension(desc.Type),
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create texture %q: %w", desc.Label, err)
	}
	t := &texture{raw: raw, desc: *desc, format: format, layers: physicalLayers(desc)}
	t.view, err = s.device.CreateTextureView(raw, &hal.TextureViewDescriptor{
		Label:           desc.Label,
		Format:          format,
		Dimension:       viewDimension(desc.Type),
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   max(desc.MipLevelCount(), 1),
		ArrayLayerCount: t.layers,
	})
	if err != nil {
		s.device.DestroyTexture(raw)
		return nil, fmt.Errorf("native: create view of texture %q: %w", desc.Label, err)
	}
	return t, nil
}

func (s *System) destroyTexture(t *texture) {
	if t.view != nil {
		s.device.DestroyTextureView(t.view)
	}
	s.device.DestroyTexture(t.raw)
	t.released = true
}

// CreateTextureArray implements render.System.
func (s *System) CreateTextureArray(textures []render.Texture) (render.TextureArray, error) {
	if len(textures) == 0 {
		return nil, fmt.Errorf("native: CreateTextureArray: empty array: %w", render.ErrInvalidDescriptor)
	}
	arr := &textureArray{textures: make([]*texture, len(textures))}
	for i, rt := range textures {
		t, err := s.texture(rt)
		if err != nil {
			return nil, fmt.Errorf("native: CreateTextureArray: texture %d: %w", i, err)
		}
		arr.textures[i] = t
	}
	return arr, nil
}

// ReleaseTexture implements render.System.
func (s *System) ReleaseTexture(rt render.Texture) error {
	t, err := s.texture(rt)
	if err != nil {
		return err
	}
	s.destroyTexture(t)
	return nil
}

// ReleaseTextureArray implements render.System.
func (s *System) ReleaseTextureArray(ra render.TextureArray) error {
	arr, ok := ra.(*textureArray)
	if !ok || arr == nil {
		return foreign("texture array", ra)
	}
	if arr.released {
		return ErrReleased
	}
	arr.released = true
	return nil
}

// WriteTexture implements render.System. Image data is uploaded as is; the
// image format must match the texel format of the texture.
func (s *System) WriteTexture(rt render.Texture, region *render.TextureRegion, image *render.SrcImageDescriptor) error {
	t, err := s.texture(rt)
	if err != nil {
		return err
	}
	if region == nil || image == nil {
		return fmt.Errorf("native: WriteTexture: %w", render.ErrInvalidDescriptor)
	}
	return s.writeTexture(t, region, image)
}

func (s *System) writeTexture(t *texture, region *render.TextureRegion, image *render.SrcImageDescriptor) error {
	e := region.Extent
	w, h, d := e.Width, max(e.Height, 1), max(e.DepthOrArrayLayers, 1)
	texel := image.Format.Size() * image.DataType.Size()
	need := render.ImageDataSize(w, h, d, image.Format, image.DataType)
	if uint64(len(image.Data)) < need {
		return fmt.Errorf("native: %d bytes of image data for %dx%dx%d region (%d required): %w",
			len(image.Data), w, h, d, need, ErrOutOfBounds)
	}
	if need == 0 {
		return nil
	}
	err := s.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.raw,
			MipLevel: region.MipLevel,
			Origin:   hal.Origin3D{X: region.Offset.X, Y: region.Offset.Y, Z: region.Offset.Z},
			Aspect:   gputypes.TextureAspectAll,
		},
		image.Data[:need],
		&hal.ImageDataLayout{BytesPerRow: w * texel, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: d},
	)
	if err != nil {
		return fmt.Errorf("native: write texture %q: %w", t.desc.Label, err)
	}
	return nil
}

// ReadTexture implements render.System. Every array layer of the MIP level
// is read; rows are tightly packed in image.Data.
func (s *System) ReadTexture(rt render.Texture, mipLevel uint32, image *render.DstImageDescriptor) error {
	t, err := s.texture(rt)
	if err != nil {
		return err
	}
	if image == nil {
		return fmt.Errorf("native: ReadTexture: %w", render.ErrInvalidDescriptor)
	}
	if mipLevel >= max(t.desc.MipLevelCount(), 1) {
		return fmt.Errorf("native: read of MIP level %d: %w", mipLevel, ErrOutOfBounds)
	}
	e := t.desc.MipExtent(mipLevel)
	depth := t.layers
	if t.desc.Type == render.Texture3D {
		depth = e.DepthOrArrayLayers
	}
	texel := uint64(image.Format.Size() * image.DataType.Size())
	row := uint64(e.Width) * texel
	need := row * uint64(e.Height) * uint64(depth)
	if uint64(len(image.Data)) < need {
		return fmt.Errorf("native: %d bytes of image storage for MIP level %d (%d required): %w",
			len(image.Data), mipLevel, need, ErrOutOfBounds)
	}
	if need == 0 {
		return nil
	}

	pitch := alignUp(row, copyPitchAlignment)
	size := pitch * uint64(e.Height) * uint64(depth)
	staging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "gfx readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("native: create readback buffer: %w", err)
	}
	defer s.device.DestroyBuffer(staging)

	err = s.submitOnce("gfx readback", func(enc hal.CommandEncoder) {
		enc.CopyTextureToBuffer(t.raw, staging, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{BytesPerRow: uint32(pitch), RowsPerImage: e.Height},
			TextureBase: hal.ImageCopyTexture{
				Texture:  t.raw,
				MipLevel: mipLevel,
				Aspect:   gputypes.TextureAspectAll,
			},
			Size: hal.Extent3D{Width: e.Width, Height: e.Height, DepthOrArrayLayers: depth},
		}})
	})
	if err != nil {
		return err
	}

	m, err := s.device.MapBuffer(staging, 0, size)
	if err != nil {
		return fmt.Errorf("native: map readback buffer: %w", err)
	}
	src := unsafeBytes(m, size)
	for y := uint64(0); y < uint64(e.Height)*uint64(depth); y++ {
		copy(image.Data[y*row:(y+1)*row], src[y*pitch:y*pitch+row])
	}
	return s.device.UnmapBuffer(staging)
}

// GenerateMips implements render.System. HAL devices have no blit path, so
// MIP generation is not available.
func (s *System) GenerateMips(rt render.Texture) error {
	if _, err := s.texture(rt); err != nil {
		return err
	}
	return fmt.Errorf("native: GenerateMips: %w", render.ErrNotSupported)
}

// GenerateMipRange implements render.System.
func (s *System) GenerateMipRange(rt render.Texture, _, _, _, _ uint32) error {
	if _, err := s.texture(rt); err != nil {
		return err
	}
	return fmt.Errorf("native: GenerateMipRange: %w", render.ErrNotSupported)
}

func (s *System) texture(rt render.Texture) (*texture, error) {
	t, ok := rt.(*texture)
	if !ok || t == nil {
		return nil, foreign("texture", rt)
	}
	if t.released {
		return nil, ErrReleased
	}
	return t, nil
}
