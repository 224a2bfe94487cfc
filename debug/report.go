// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Severity of a report.
type Severity uint8

const (
	// SeverityError means the result of the call is undefined.
	SeverityError Severity = iota + 1

	// SeverityWarning means the call is well-defined but deviates from
	// common practice or is inefficient.
	SeverityWarning
)

// String returns "error" or "warning".
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", s)
	}
}

// Category classifies a report. The first four categories are errors, the
// remaining four are warnings.
type Category uint8

const (
	// InvalidArgument: an argument violates a documented constraint.
	InvalidArgument Category = iota + 1

	// InvalidState: the object is in a state that does not allow the call.
	InvalidState

	// UnsupportedFeature: the call needs a capability the backend lacks.
	UnsupportedFeature

	// UndefinedBehavior: the call has no defined result.
	UndefinedBehavior

	// ImproperArgument: an argument is valid but likely a mistake.
	ImproperArgument

	// ImproperState: the object state is valid but likely a mistake.
	ImproperState

	// PointlessOperation: the call has no effect.
	PointlessOperation

	// VaryingBehavior: the result depends on the backend.
	VaryingBehavior
)

var categoryNames = [...]string{
	InvalidArgument:    "InvalidArgument",
	InvalidState:       "InvalidState",
	UnsupportedFeature: "UnsupportedFeature",
	UndefinedBehavior:  "UndefinedBehavior",
	ImproperArgument:   "ImproperArgument",
	ImproperState:      "ImproperState",
	PointlessOperation: "PointlessOperation",
	VaryingBehavior:    "VaryingBehavior",
}

// String returns the category name.
func (c Category) String() string {
	if c > 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", c)
}

// ParseCategory returns the category with the given name, as printed by
// Category.String.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n != "" && n == name {
			return Category(c), true
		}
	}
	return 0, false
}

// Severity returns the severity the category belongs to.
func (c Category) Severity() Severity {
	if c >= ImproperArgument {
		return SeverityWarning
	}
	return SeverityError
}

// Report is one validation diagnostic.
type Report struct {
	// Op is the operation that produced the report.
	Op Op

	// Category classifies the report.
	Category Category

	// Message is the human-readable description.
	Message string
}

// Severity returns the severity of the report's category.
func (r Report) Severity() Severity { return r.Category.Severity() }

// String formats the report as "error (InvalidArgument) in CreateBuffer: message".
func (r Report) String() string {
	return fmt.Sprintf("%s (%s) in %s: %s", r.Severity(), r.Category, r.Op, r.Message)
}

// Debugger receives validation reports.
type Debugger interface {
	Post(r Report)
}

// DebuggerFunc adapts a function to the Debugger interface.
type DebuggerFunc func(Report)

// Post calls f(r).
func (f DebuggerFunc) Post(r Report) { f(r) }

// Filter returns a Debugger that forwards reports to d except those of the
// ignored categories.
func Filter(d Debugger, ignore ...Category) Debugger {
	if len(ignore) == 0 {
		return d
	}
	return DebuggerFunc(func(r Report) {
		if slices.Contains(ignore, r.Category) {
			return
		}
		d.Post(r)
	})
}

// Recorder is a Debugger that keeps every report. The zero value is ready
// to use. Recorder is not safe for concurrent use.
type Recorder struct {
	reports []Report
}

// Post implements Debugger.
func (rec *Recorder) Post(r Report) {
	rec.reports = append(rec.reports, r)
}

// Reports returns all reports in arrival order.
func (rec *Recorder) Reports() []Report {
	return rec.reports
}

// Errors returns the error reports.
func (rec *Recorder) Errors() []Report {
	return rec.filter(SeverityError)
}

// Warnings returns the warning reports.
func (rec *Recorder) Warnings() []Report {
	return rec.filter(SeverityWarning)
}

func (rec *Recorder) filter(s Severity) []Report {
	var out []Report
	for _, r := range rec.reports {
		if r.Severity() == s {
			out = append(out, r)
		}
	}
	return out
}

// Contains reports whether a report of the given category has a message
// containing substr.
func (rec *Recorder) Contains(c Category, substr string) bool {
	for _, r := range rec.reports {
		if r.Category == c && strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}

// Reset drops all reports.
func (rec *Recorder) Reset() {
	rec.reports = rec.reports[:0]
}

// LogDebugger is a Debugger that writes reports to a slog.Logger.
// Errors are logged at slog.LevelError and warnings at slog.LevelWarn.
type LogDebugger struct {
	Logger *slog.Logger
}

// NewLogDebugger returns a LogDebugger writing to l. A nil l uses slog.Default().
func NewLogDebugger(l *slog.Logger) *LogDebugger {
	if l == nil {
		l = slog.Default()
	}
	return &LogDebugger{Logger: l}
}

// Post implements Debugger.
func (d *LogDebugger) Post(r Report) {
	level := slog.LevelWarn
	if r.Severity() == SeverityError {
		level = slog.LevelError
	}
	d.Logger.Log(context.Background(), level, r.Message,
		slog.String("op", r.Op.String()),
		slog.String("category", r.Category.String()))
}
