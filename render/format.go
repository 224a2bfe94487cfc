// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// ImageFormat is the component layout of CPU-side image data.
type ImageFormat uint8

const (
	ImageFormatR ImageFormat = iota
	ImageFormatRG
	ImageFormatRGB
	ImageFormatRGBA
	ImageFormatBGRA
	ImageFormatDepth
	ImageFormatDepthStencil
)

// Size returns the number of components per pixel.
func (f ImageFormat) Size() uint32 {
	switch f {
	case ImageFormatR, ImageFormatDepth:
		return 1
	case ImageFormatRG, ImageFormatDepthStencil:
		return 2
	case ImageFormatRGB:
		return 3
	case ImageFormatRGBA, ImageFormatBGRA:
		return 4
	default:
		return 0
	}
}

// DataType is the component type of CPU-side image data.
type DataType uint8

const (
	DataTypeInt8 DataType = iota
	DataTypeUInt8
	DataTypeInt16
	DataTypeUInt16
	DataTypeInt32
	DataTypeUInt32
	DataTypeFloat16
	DataTypeFloat32
	DataTypeFloat64
)

// Size returns the component size in bytes.
func (t DataType) Size() uint32 {
	switch t {
	case DataTypeInt8, DataTypeUInt8:
		return 1
	case DataTypeInt16, DataTypeUInt16, DataTypeFloat16:
		return 2
	case DataTypeInt32, DataTypeUInt32, DataTypeFloat32:
		return 4
	case DataTypeFloat64:
		return 8
	default:
		return 0
	}
}

// ImageDataSize returns the byte size of an image with the given extent,
// format and data type.
func ImageDataSize(width, height, depth uint32, format ImageFormat, dataType DataType) uint64 {
	return uint64(width) * uint64(height) * uint64(depth) * uint64(format.Size()) * uint64(dataType.Size())
}
