package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/render"
)

type sampler struct {
	raw      hal.Sampler
	released bool
}

func (s *sampler) ResourceType() render.ResourceType { return render.ResourceTypeSampler }

type samplerArray struct {
	samplers []*sampler
	released bool
}

func (a *samplerArray) ResourceType() render.ResourceType { return render.ResourceTypeSamplerArray }

// mipmapFilter converts a MIP filter mode to the HAL filter mode.
func mipmapFilter(m gputypes.MipmapFilterMode) gputypes.FilterMode {
	switch m {
	case gputypes.MipmapFilterModeLinear:
		return gputypes.FilterModeLinear
	case gputypes.MipmapFilterModeNearest:
		return gputypes.FilterModeNearest
	default:
		return gputypes.FilterModeUndefined
	}
}

// CreateSampler implements render.System.
func (s *System) CreateSampler(desc *render.SamplerDescriptor) (render.Sampler, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateSampler: %w", render.ErrInvalidDescriptor)
	}
	raw, err := s.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: desc.AddressModeU,
		AddressModeV: desc.AddressModeV,
		AddressModeW: desc.AddressModeW,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: mipmapFilter(desc.MipmapFilter),
		LodMinClamp:  desc.LodMinClamp,
		LodMaxClamp:  desc.LodMaxClamp,
		Compare:      desc.Compare,
		Anisotropy:   max(desc.MaxAnisotropy, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("native: create sampler %q: %w", desc.Label, err)
	}
	return &sampler{raw: raw}, nil
}

// CreateSamplerArray implements render.System.
func (s *System) CreateSamplerArray(samplers []render.Sampler) (render.SamplerArray, error) {
	if len(samplers) == 0 {
		return nil, fmt.Errorf("native: CreateSamplerArray: empty array: %w", render.ErrInvalidDescriptor)
	}
	arr := &samplerArray{samplers: make([]*sampler, len(samplers))}
	for i, rs := range samplers {
		sm, err := s.sampler(rs)
		if err != nil {
			return nil, fmt.Errorf("native: CreateSamplerArray: sampler %d: %w", i, err)
		}
		arr.samplers[i] = sm
	}
	return arr, nil
}

// ReleaseSampler implements render.System.
func (s *System) ReleaseSampler(rs render.Sampler) error {
	sm, err := s.sampler(rs)
	if err != nil {
		return err
	}
	s.device.DestroySampler(sm.raw)
	sm.released = true
	return nil
}

// ReleaseSamplerArray implements render.System.
func (s *System) ReleaseSamplerArray(ra render.SamplerArray) error {
	arr, ok := ra.(*samplerArray)
	if !ok || arr == nil {
		return foreign("sampler array", ra)
	}
	if arr.released {
		return ErrReleased
	}
	arr.released = true
	return nil
}

func (s *System) sampler(rs render.Sampler) (*sampler, error) {
	sm, ok := rs.(*sampler)
	if !ok || sm == nil {
		return nil, foreign("sampler", rs)
	}
	if sm.released {
		return nil, ErrReleased
	}
	return sm, nil
}
