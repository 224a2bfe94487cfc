package backend

import (
	"errors"

	"github.com/gogpu/gfx/render"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoBackend is returned by OpenDefault when no registered backend opens.
	ErrNoBackend = errors.New("backend: no backend could be opened")
)

// Factory opens a render system.
//
// A factory may fail when the platform lacks the API it targets, for example
// a Vulkan factory on a machine without a Vulkan driver. Systems that hold
// OS resources also implement io.Closer.
type Factory func() (render.System, error)

// Backend names registered by backend/native.
const (
	Vulkan = "vulkan"
	Metal  = "metal"
	DX12   = "dx12"
	GL     = "gl"
	Noop   = "noop"
)
