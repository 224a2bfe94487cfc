// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// QueryType is the kind of GPU query.
type QueryType uint8

const (
	// QuerySamplesPassed counts samples that pass the depth test.
	QuerySamplesPassed QueryType = iota + 1

	// QueryAnySamplesPassed reports whether any sample passed.
	QueryAnySamplesPassed

	// QueryTimeElapsed measures GPU time between begin and end.
	QueryTimeElapsed

	// QueryPipelineStatistics collects pipeline invocation counters.
	QueryPipelineStatistics
)

// String returns the query type name.
func (t QueryType) String() string {
	switch t {
	case QuerySamplesPassed:
		return "samples passed"
	case QueryAnySamplesPassed:
		return "any samples passed"
	case QueryTimeElapsed:
		return "time elapsed"
	case QueryPipelineStatistics:
		return "pipeline statistics"
	default:
		return fmt.Sprintf("QueryType(%d)", t)
	}
}

// QueryDescriptor describes a query to create.
type QueryDescriptor struct {
	// Label is an optional debug label.
	Label string

	Type QueryType
}
