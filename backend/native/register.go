package native

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/render"
)

// halBackends maps registry names to the HAL backend each one opens.
var halBackends = map[string]gputypes.Backend{
	backend.Vulkan: gputypes.BackendVulkan,
	backend.Metal:  gputypes.BackendMetal,
	backend.DX12:   gputypes.BackendDX12,
	backend.GL:     gputypes.BackendGL,
	backend.Noop:   gputypes.BackendEmpty,
}

func init() {
	for name, b := range halBackends {
		backend.Register(name, opener(b))
	}
}

func opener(b gputypes.Backend) backend.Factory {
	return func() (render.System, error) {
		s, err := Open(b)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
