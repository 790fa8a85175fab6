package sheetCache

import (
	"errors"
	"fmt"
	"image"

	"cutscene-player/pkg/sharedTypes"
)

// ErrInvalidSheet is returned when decoded pixels cannot hold a full frame grid.
var ErrInvalidSheet = errors.New("sheetCache: invalid sheet")

// Sheet is one decoded sprite sheet in render-ready RGBA form (4 bytes per
// pixel, rows packed with stride Width*4).
type Sheet struct {
	Index  int
	Width  int
	Height int
	Pix    []byte
}

// NewSheet validates a decoded pixel buffer and wraps it. The buffer must be
// large enough for the fixed 3x8 grid of 600x250 frames.
func NewSheet(index int, pix []byte, width, height int) (*Sheet, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: negative index %d", ErrInvalidSheet, index)
	}
	if width < sharedTypes.SheetWidth || height < sharedTypes.SheetHeight {
		return nil, fmt.Errorf("%w: %dx%d is smaller than the %dx%d grid",
			ErrInvalidSheet, width, height, sharedTypes.SheetWidth, sharedTypes.SheetHeight)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d RGBA", ErrInvalidSheet, len(pix), width, height)
	}
	return &Sheet{Index: index, Width: width, Height: height, Pix: pix}, nil
}

// Pitch returns the byte length of one pixel row.
func (s *Sheet) Pitch() int {
	return s.Width * 4
}

// Bytes returns the size of the pixel buffer.
func (s *Sheet) Bytes() int {
	return len(s.Pix)
}

// RGBA exposes the pixels as an image without copying.
func (s *Sheet) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    s.Pix,
		Stride: s.Pitch(),
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}
