package native

import (
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/render"
)

// pollInterval is the sleep between completion polls in WaitFence.
const pollInterval = 100 * time.Microsecond

type query struct {
	typ      render.QueryType
	set      hal.QuerySet
	released bool
}

func (q *query) ResourceType() render.ResourceType { return render.ResourceTypeQuery }
func (q *query) QueryType() render.QueryType       { return q.typ }

// fence is signaled once the queue completes the submission it was
// submitted after.
type fence struct {
	target   uint64
	released bool
}

func (f *fence) ResourceType() render.ResourceType { return render.ResourceTypeFence }

// CreateQuery implements render.System.
func (s *System) CreateQuery(desc *render.QueryDescriptor) (render.Query, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateQuery: %w", render.ErrInvalidDescriptor)
	}
	hd := &hal.QuerySetDescriptor{Label: desc.Label}
	switch desc.Type {
	case render.QuerySamplesPassed, render.QueryAnySamplesPassed:
		hd.Type, hd.Count = hal.QueryTypeOcclusion, 1
	case render.QueryTimeElapsed:
		hd.Type, hd.Count = hal.QueryTypeTimestamp, 2
	default:
		return nil, fmt.Errorf("native: %s queries: %w", desc.Type, render.ErrNotSupported)
	}
	set, err := s.device.CreateQuerySet(hd)
	if err != nil {
		return nil, fmt.Errorf("native: create %s query: %w", desc.Type, err)
	}
	return &query{typ: desc.Type, set: set}, nil
}

// ReleaseQuery implements render.System.
func (s *System) ReleaseQuery(rq render.Query) error {
	q, err := s.query(rq)
	if err != nil {
		return err
	}
	s.device.DestroyQuerySet(q.set)
	q.released = true
	return nil
}

func (s *System) query(rq render.Query) (*query, error) {
	q, ok := rq.(*query)
	if !ok || q == nil {
		return nil, foreign("query", rq)
	}
	if q.released {
		return nil, ErrReleased
	}
	return q, nil
}

// CreateFence implements render.System.
func (s *System) CreateFence() (render.Fence, error) {
	return &fence{}, nil
}

// ReleaseFence implements render.System.
func (s *System) ReleaseFence(rf render.Fence) error {
	f, err := s.fence(rf)
	if err != nil {
		return err
	}
	f.released = true
	return nil
}

func (s *System) fence(rf render.Fence) (*fence, error) {
	f, ok := rf.(*fence)
	if !ok || f == nil {
		return nil, foreign("fence", rf)
	}
	if f.released {
		return nil, ErrReleased
	}
	return f, nil
}

// commandQueue submits to the HAL queue of a System.
type commandQueue struct {
	s *System
}

var _ render.CommandQueue = (*commandQueue)(nil)

// Submit implements render.CommandQueue. It returns the first error that
// occurred while the buffer was recorded.
func (q *commandQueue) Submit(rc render.CommandBuffer) error {
	c, err := q.s.commandBuffer(rc)
	if err != nil {
		return err
	}
	if c.err != nil {
		return fmt.Errorf("native: recorded commands: %w", c.err)
	}
	if c.recording {
		return fmt.Errorf("%w: submit while recording", ErrInvalidCommand)
	}
	if c.cmd == nil {
		return fmt.Errorf("%w: command buffer was never recorded", ErrInvalidCommand)
	}
	idx, err := q.s.queue.Submit([]hal.CommandBuffer{c.cmd})
	if err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	c.submission = idx
	q.s.lastSubmission = idx
	return nil
}

// SubmitFence implements render.CommandQueue.
func (q *commandQueue) SubmitFence(rf render.Fence) error {
	f, err := q.s.fence(rf)
	if err != nil {
		return err
	}
	f.target = q.s.lastSubmission
	return nil
}

// WaitFence implements render.CommandQueue. A zero timeout falls back to
// Configuration.DefaultFenceTimeout; if that is zero too, it waits for the
// device to become idle.
func (q *commandQueue) WaitFence(rf render.Fence, timeout time.Duration) (bool, error) {
	f, err := q.s.fence(rf)
	if err != nil {
		return false, err
	}
	if timeout == 0 {
		timeout = q.s.cfg.DefaultFenceTimeout
	}
	if timeout <= 0 {
		if err := q.s.device.WaitIdle(); err != nil {
			return false, err
		}
		return true, nil
	}
	deadline := time.Now().Add(timeout)
	for q.s.queue.PollCompleted() < f.target {
		if time.Now().After(deadline) {
			return false, nil
		}
		time.Sleep(pollInterval)
	}
	return true, nil
}

// WaitIdle implements render.CommandQueue.
func (q *commandQueue) WaitIdle() error {
	return q.s.device.WaitIdle()
}
