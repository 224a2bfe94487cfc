// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import "fmt"

// sink routes reports to the debugger and counts to the profiler.
// Either collaborator may be nil.
type sink struct {
	debugger Debugger
	profiler Profiler
}

// validating reports whether validation rules should run.
func (s *sink) validating() bool { return s.debugger != nil }

func (s *sink) post(op Op, c Category, format string, args ...any) {
	if s.debugger == nil {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.debugger.Post(Report{Op: op, Category: c, Message: msg})
}

func (s *sink) count(op Op) {
	if s.profiler != nil {
		s.profiler.Record(op)
	}
}
