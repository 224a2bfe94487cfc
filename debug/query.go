// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/render"
)

// CreateQuery implements render.System.
func (r *RenderSystem) CreateQuery(desc *render.QueryDescriptor) (render.Query, error) {
	const op = OpCreateQuery
	if desc == nil {
		return nil, r.nilArgument(op, "query descriptor")
	}
	if r.sink.validating() {
		r.validateQueryDesc(op, desc)
	}

	native, err := r.instance.CreateQuery(desc)
	if err != nil {
		return nil, err
	}
	h := r.queries.insert(queryEntry{native: native})
	r.sink.count(op)
	return &Query{ref: ref{owner: r, h: h}, typ: desc.Type}, nil
}

func (r *RenderSystem) validateQueryDesc(op Op, desc *render.QueryDescriptor) {
	var need gputypes.Feature
	switch desc.Type {
	case render.QuerySamplesPassed, render.QueryAnySamplesPassed:
		return
	case render.QueryTimeElapsed:
		need = gputypes.FeatureTimestampQuery
	case render.QueryPipelineStatistics:
		need = gputypes.FeaturePipelineStatisticsQuery
	default:
		r.sink.post(op, InvalidArgument, "invalid query type: %s", desc.Type)
		return
	}
	if !r.caps.DeviceFeatures.Contains(need) {
		r.sink.post(op, UnsupportedFeature, "%s queries not supported", desc.Type)
	}
}

// ReleaseQuery implements render.System.
func (r *RenderSystem) ReleaseQuery(q render.Query) error {
	const op = OpReleaseQuery
	d, e, err := r.query(op, q)
	if err != nil {
		return err
	}
	if r.sink.validating() && e.active {
		r.sink.post(op, ImproperState, "releasing %s query that is still active", d.typ)
	}
	if err := r.instance.ReleaseQuery(e.native); err != nil {
		return err
	}
	r.queries.remove(d.h)
	r.sink.count(op)
	return nil
}
