// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import "errors"

// Package errors for fatal preconditions. Calls that fail with one of these
// are not forwarded to the wrapped system.
var (
	// ErrInvalidHandle is returned when a handle is nil, of the wrong kind,
	// or was created by another render system.
	ErrInvalidHandle = errors.New("debug: invalid handle")

	// ErrReleased is returned when a handle was already released.
	ErrReleased = errors.New("debug: handle already released")

	// ErrNilArgument is returned when a required descriptor or argument is nil.
	ErrNilArgument = errors.New("debug: nil argument")

	// ErrNilShaderProgram is returned when a pipeline descriptor has no shader program.
	ErrNilShaderProgram = errors.New("debug: shader program must not be null")
)
