package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrBadDimensions is returned for images with an empty pixel area.
var ErrBadDimensions = errors.New("decoder: image has no pixels")

// DecodeSheet decodes a compressed sheet (png or webp) into tightly packed
// RGBA pixels. Grid validation is left to the cache.
func DecodeSheet(data []byte) (pix []byte, width, height int, err error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decoder: %w", err)
	}

	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, 0, 0, fmt.Errorf("%w (%s %dx%d)", ErrBadDimensions, format, width, height)
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == width*4 {
		return rgba.Pix[:width*height*4], width, height, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst.Pix, width, height, nil
}
