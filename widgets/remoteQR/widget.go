package remoteQR

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/veandco/go-sdl2/sdl"

	"cutscene-player/ui"
)

// Widget shows a QR code of the remote-control URL next to the menu
type Widget struct {
	qrTexture *sdl.Texture
	url       string
	qrWidth   int32
	qrHeight  int32
}

// DecodeRGBA converts the QR PNG into packed RGBA pixels
func DecodeRGBA(qrPNG []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(qrPNG))
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR code PNG: %w", err)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// NewWidget uploads the QR code to a texture
func NewWidget(renderer *sdl.Renderer, qrPNG []byte, url string) (*Widget, error) {
	rgba, err := DecodeRGBA(qrPNG)
	if err != nil {
		return nil, err
	}
	width, height := rgba.Rect.Dx(), rgba.Rect.Dy()

	surface, err := sdl.CreateRGBSurface(0, int32(width), int32(height), 32,
		0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000)
	if err != nil {
		return nil, fmt.Errorf("failed to create SDL surface: %w", err)
	}
	defer surface.Free()

	surface.Lock()
	pixels := surface.Pixels()
	pitch := int(surface.Pitch)
	for y := 0; y < height; y++ {
		copy(pixels[y*pitch:y*pitch+width*4], rgba.Pix[y*rgba.Stride:y*rgba.Stride+width*4])
	}
	surface.Unlock()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture from surface: %w", err)
	}

	return &Widget{
		qrTexture: texture,
		url:       url,
		qrWidth:   int32(width),
		qrHeight:  int32(height),
	}, nil
}

// Render draws the QR panel in the bottom right corner
func (w *Widget) Render(renderer *sdl.Renderer, windowWidth, windowHeight int32, fonts *ui.Fonts) error {
	panelWidth := w.qrWidth + 40
	panelHeight := w.qrHeight + 90
	panelX := windowWidth - panelWidth - 40
	panelY := windowHeight - panelHeight - 40

	renderer.SetDrawColor(30, 41, 59, 255)
	renderer.FillRect(&sdl.Rect{X: panelX, Y: panelY, W: panelWidth, H: panelHeight})
	renderer.SetDrawColor(59, 130, 246, 255)
	renderer.DrawRect(&sdl.Rect{X: panelX, Y: panelY, W: panelWidth, H: panelHeight})

	whiteColor := sdl.Color{R: 255, G: 255, B: 255, A: 255}
	grayColor := sdl.Color{R: 148, G: 163, B: 184, A: 255}

	currentY := panelY + 12
	if fonts != nil && fonts.Small != nil {
		if _, err := ui.RenderText(renderer, "Scan to control playback", panelX+20, currentY, whiteColor, fonts.Small); err != nil {
			return err
		}
	}
	currentY += 28

	qrRect := sdl.Rect{X: panelX + 20, Y: currentY, W: w.qrWidth, H: w.qrHeight}
	if err := renderer.Copy(w.qrTexture, nil, &qrRect); err != nil {
		return fmt.Errorf("failed to render QR code: %w", err)
	}
	currentY += w.qrHeight + 10

	if fonts != nil && fonts.Small != nil {
		url := ui.FitText(w.url, panelWidth-40, ui.Measure(fonts.Small))
		if _, err := ui.RenderText(renderer, url, panelX+20, currentY, grayColor, fonts.Small); err != nil {
			return err
		}
	}
	return nil
}

// Destroy cleans up widget resources
func (w *Widget) Destroy() {
	if w.qrTexture != nil {
		w.qrTexture.Destroy()
		w.qrTexture = nil
	}
}
