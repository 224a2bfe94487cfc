// Package capture reads textures back from a render system and encodes
// them as image files.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/gogpu/gfx/render"
)

// Capture errors.
var (
	// ErrUnsupportedFormat is returned when the file extension is not .png or .bmp.
	ErrUnsupportedFormat = errors.New("capture: unsupported format")

	// ErrEmptyTexture is returned when the requested image has no pixels.
	ErrEmptyTexture = errors.New("capture: empty texture")
)

// Format is an image file format.
type Format uint8

const (
	PNG Format = iota
	BMP
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadImage reads MIP level 0 of tex back as 8-bit RGBA.
// The texture must be width x height texels at level 0.
func ReadImage(sys render.System, tex render.Texture, width, height uint32) (*image.NRGBA, error) {
	if width == 0 || height == 0 {
		return nil, ErrEmptyTexture
	}
	img := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	dst := &render.DstImageDescriptor{
		Format:   render.ImageFormatRGBA,
		DataType: render.DataTypeUInt8,
		Data:     img.Pix,
	}
	if err := sys.ReadTexture(tex, 0, dst); err != nil {
		return nil, fmt.Errorf("capture: read texture: %w", err)
	}
	return img, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("capture: encode: %w", err)
	}
	return nil
}

// SaveTexture reads tex back and writes it to path. The format follows the
// file extension.
func SaveTexture(path string, sys render.System, tex render.Texture, width, height uint32) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	img, err := ReadImage(sys, tex, width, height)
	if err != nil {
		return err
	}
	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("capture: create file: %w", err)
	}
	if err := Encode(out, img, f); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
