package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilDevice is returned when a System is created without a HAL device or queue.
	ErrNilDevice = errors.New("native: HAL device is nil")

	// ErrNoAdapter is returned by Open when the backend exposes no adapter.
	ErrNoAdapter = errors.New("native: no GPU adapter available")

	// ErrForeignResource is returned when a resource was not created by this package.
	ErrForeignResource = errors.New("native: resource was not created by the native backend")

	// ErrReleased is returned when a resource is used or released after release.
	ErrReleased = errors.New("native: resource already released")

	// ErrShaderCompile is returned when WGSL source fails to compile.
	ErrShaderCompile = errors.New("native: shader compilation failed")

	// ErrOutOfBounds is returned when a data transfer exceeds the resource.
	ErrOutOfBounds = errors.New("native: data transfer out of bounds")

	// ErrMapState is returned when mapping a mapped buffer or unmapping an unmapped one.
	ErrMapState = errors.New("native: invalid buffer map state")

	// ErrInvalidCommand is returned by Submit when a recorded command was invalid.
	ErrInvalidCommand = errors.New("native: invalid command")
)
