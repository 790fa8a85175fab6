package ui

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

var ErrNoFont = errors.New("ui: font not available")

// RenderText draws text with its top-left corner at (x, y) and returns the
// area it covered.
func RenderText(renderer *sdl.Renderer, text string, x, y int32, color sdl.Color, font *ttf.Font) (sdl.Rect, error) {
	if font == nil {
		return sdl.Rect{}, ErrNoFont
	}
	if text == "" {
		return sdl.Rect{X: x, Y: y}, nil
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return sdl.Rect{}, fmt.Errorf("failed to render %q: %w", text, err)
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return sdl.Rect{}, fmt.Errorf("failed to create text texture: %w", err)
	}
	defer texture.Destroy()

	dst := sdl.Rect{X: x, Y: y, W: surface.W, H: surface.H}
	return dst, renderer.Copy(texture, nil, &dst)
}

// RenderTextCentered draws text horizontally centered on centerX.
func RenderTextCentered(renderer *sdl.Renderer, text string, centerX, y int32, color sdl.Color, font *ttf.Font) (sdl.Rect, error) {
	if font == nil {
		return sdl.Rect{}, ErrNoFont
	}
	w, _, err := font.SizeUTF8(text)
	if err != nil {
		return sdl.Rect{}, err
	}
	return RenderText(renderer, text, centerX-int32(w)/2, y, color, font)
}

// FitText shortens text with a trailing "..." until measure reports it fits
// in maxWidth.
func FitText(text string, maxWidth int32, measure func(string) int32) string {
	if measure(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "..."
		if measure(candidate) <= maxWidth {
			return candidate
		}
	}
	return "..."
}

// Measure adapts font to FitText. A nil font measures everything as 0.
func Measure(font *ttf.Font) func(string) int32 {
	return func(s string) int32 {
		if font == nil {
			return 0
		}
		w, _, err := font.SizeUTF8(s)
		if err != nil {
			return 0
		}
		return int32(w)
	}
}
