// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"time"

	"github.com/gogpu/gfx/render"
)

// CommandQueue wraps the command queue of the wrapped render system.
type CommandQueue struct {
	owner  *RenderSystem
	native render.CommandQueue
}

var _ render.CommandQueue = (*CommandQueue)(nil)

// Submit implements render.CommandQueue.
func (q *CommandQueue) Submit(cb render.CommandBuffer) error {
	const op = OpSubmit
	r := q.owner
	_, e, err := r.commandBuffer(op, cb)
	if err != nil {
		return err
	}
	if r.sink.validating() {
		switch {
		case e.recording:
			r.sink.post(op, InvalidState, "cannot submit command buffer that is still recording")
		case !e.recorded:
			r.sink.post(op, PointlessOperation, "submitting command buffer that was never recorded")
		}
	}
	if err := q.native.Submit(e.native); err != nil {
		return err
	}
	r.sink.count(op)
	return nil
}

// SubmitFence implements render.CommandQueue.
func (q *CommandQueue) SubmitFence(f render.Fence) error {
	const op = OpSubmitFence
	r := q.owner
	_, e, err := r.fence(op, f)
	if err != nil {
		return err
	}
	if err := q.native.SubmitFence(e.native); err != nil {
		return err
	}
	r.sink.count(op)
	return nil
}

// WaitFence implements render.CommandQueue.
func (q *CommandQueue) WaitFence(f render.Fence, timeout time.Duration) (bool, error) {
	const op = OpWaitFence
	r := q.owner
	_, e, err := r.fence(op, f)
	if err != nil {
		return false, err
	}
	if r.sink.validating() && timeout < 0 {
		r.sink.post(op, InvalidArgument, "fence timeout must not be negative (%s specified)", timeout)
	}
	signaled, err := q.native.WaitFence(e.native, timeout)
	if err != nil {
		return false, err
	}
	r.sink.count(op)
	return signaled, nil
}

// WaitIdle implements render.CommandQueue.
func (q *CommandQueue) WaitIdle() error {
	const op = OpWaitIdle
	if err := q.native.WaitIdle(); err != nil {
		return err
	}
	q.owner.sink.count(op)
	return nil
}
