package native

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/render"
)

// System is a render.System backed by a HAL device.
type System struct {
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance // set by Open, destroyed by Close

	id   render.RendererID
	info render.RendererInfo
	caps render.RenderingCaps
	cfg  render.Configuration

	cmdQueue *commandQueue

	// lastSubmission is the HAL submission index of the latest Submit.
	lastSubmission uint64
}

// Compile-time interface checks.
var (
	_ render.System        = (*System)(nil)
	_ render.CommandBuffer = (*commandBuffer)(nil)
	_ render.RenderContext = (*renderTarget)(nil)
	_ render.Buffer        = (*buffer)(nil)
	_ render.Texture       = (*texture)(nil)
	_ render.Shader        = (*shader)(nil)
	_ render.Query         = (*query)(nil)
)

// Option configures a System during creation.
type Option func(*System)

// WithLimits sets the device limits reported in the rendering caps.
func WithLimits(l gputypes.Limits) Option {
	return func(s *System) {
		s.caps.Limits = render.LimitsFrom(l)
	}
}

// WithFeatures sets the renderer features reported in the rendering caps.
func WithFeatures(f render.Features) Option {
	return func(s *System) {
		s.caps.Features = f
	}
}

// WithDeviceFeatures sets the WebGPU device features reported in the rendering caps.
func WithDeviceFeatures(f gputypes.Features) Option {
	return func(s *System) {
		s.caps.DeviceFeatures = f
	}
}

// WithRendererID sets the renderer ID.
func WithRendererID(id render.RendererID) Option {
	return func(s *System) {
		s.id = id
		s.info.RendererName = id.String()
	}
}

// WithInfo sets the renderer info.
func WithInfo(info render.RendererInfo) Option {
	return func(s *System) {
		s.info = info
	}
}

func logger() *slog.Logger { return gfx.LoggerFor("native") }

// New creates a System on an existing device and queue. The caller keeps
// ownership of both; Close does not destroy them.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*System, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	s := &System{
		device: device,
		queue:  queue,
		id:     render.RendererWebGPU,
		info: render.RendererInfo{
			RendererName:        render.RendererWebGPU.String(),
			ShadingLanguageName: "WGSL",
		},
		caps: render.RenderingCaps{
			Features: render.WebGPUFeatures,
			Limits:   render.DefaultLimits(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cmdQueue = &commandQueue{s: s}
	logger().Debug("system created",
		"renderer", s.id.String(), "device", s.info.DeviceName)
	return s, nil
}

// NewFromProvider creates a System on the device of a host application.
// The provider must expose HAL device and queue objects.
func NewFromProvider(p render.DeviceHandle, opts ...Option) (*System, error) {
	if p == nil {
		return nil, ErrNilDevice
	}
	device, ok := p.Device().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: provider device is %T", ErrNilDevice, p.Device())
	}
	queue, ok := p.Queue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: provider queue is %T", ErrNilDevice, p.Queue())
	}
	info := render.RendererInfo{
		RendererName:        render.RendererWebGPU.String(),
		DeviceName:          p.AdapterInfo().Name,
		ShadingLanguageName: "WGSL",
	}
	return New(device, queue, append([]Option{WithInfo(info)}, opts...)...)
}

// Open creates a System on the first adapter of a registered HAL backend.
// Backends register themselves when their package is imported, for example
// github.com/gogpu/wgpu/hal/noop or github.com/gogpu/wgpu/hal/vulkan.
func Open(api gputypes.Backend, opts ...Option) (*System, error) {
	b, ok := hal.GetBackend(api)
	if !ok {
		return nil, fmt.Errorf("%w: backend %s is not registered", ErrNoAdapter, api)
	}
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("native: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	exposed := adapters[0]
	limits := exposed.Capabilities.Limits
	if limits.MaxTextureDimension2D == 0 {
		limits = gputypes.DefaultLimits()
	}
	open, err := exposed.Adapter.Open(exposed.Features, limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("native: open adapter %q: %w", exposed.Info.Name, err)
	}

	id := render.RendererFromBackend(exposed.Info.Backend)
	base := []Option{
		WithRendererID(id),
		WithInfo(render.RendererInfo{
			RendererName:        id.String(),
			DeviceName:          exposed.Info.Name,
			VendorName:          exposed.Info.Vendor,
			ShadingLanguageName: "WGSL",
		}),
		WithLimits(limits),
		WithDeviceFeatures(exposed.Features),
	}
	s, err := New(open.Device, open.Queue, append(base, opts...)...)
	if err != nil {
		instance.Destroy()
		return nil, err
	}
	s.instance = instance
	logger().Info("adapter opened",
		"renderer", id.String(), "adapter", exposed.Info.Name, "vendor", exposed.Info.Vendor)
	return s, nil
}

// Close waits for the device to become idle. If the System was created by
// Open it also destroys the device and instance.
func (s *System) Close() error {
	err := s.device.WaitIdle()
	if s.instance != nil {
		s.device.Destroy()
		s.instance.Destroy()
		s.instance = nil
	}
	return err
}

// Device returns the HAL device.
func (s *System) Device() hal.Device { return s.device }

// RendererID implements render.System.
func (s *System) RendererID() render.RendererID { return s.id }

// RendererInfo implements render.System.
func (s *System) RendererInfo() render.RendererInfo { return s.info }

// RenderingCaps implements render.System.
func (s *System) RenderingCaps() render.RenderingCaps { return s.caps }

// SetConfiguration implements render.System.
func (s *System) SetConfiguration(cfg render.Configuration) { s.cfg = cfg }

// CommandQueue implements render.System.
func (s *System) CommandQueue() render.CommandQueue { return s.cmdQueue }

// foreign returns the error for a resource of an unexpected type.
func foreign(what string, v any) error {
	return fmt.Errorf("%w: %s of type %T", ErrForeignResource, what, v)
}
