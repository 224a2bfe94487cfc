// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Package errors shared by render system implementations.
var (
	// ErrNotSupported is returned when a backend cannot perform an operation.
	ErrNotSupported = errors.New("render: operation not supported by backend")

	// ErrInvalidDescriptor is returned when a backend receives a descriptor it cannot map.
	ErrInvalidDescriptor = errors.New("render: invalid descriptor")
)
