package progress

import (
	"fmt"

	"cutscene-player/ui"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

var (
	trackColor = sdl.Color{R: 30, G: 41, B: 59, A: 255}
	fillStart  = [3]uint8{59, 130, 246}
	fillEnd    = [3]uint8{30, 64, 175}
)

// Widget shows how much of the selected cutscene is decoded while Loading
type Widget struct {
	Label string
}

func NewWidget() *Widget {
	return &Widget{Label: "Loading"}
}

// FillWidth returns the filled part of a bar width wide for fraction in [0,1]
func FillWidth(width int32, fraction float64) int32 {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return int32(float64(width) * fraction)
}

// Draw renders a centered bar with a percentage caption
func (w *Widget) Draw(renderer *sdl.Renderer, screenWidth, screenHeight int32, fraction float64, font *ttf.Font) error {
	barWidth := screenWidth / 2
	barHeight := int32(24)
	x := (screenWidth - barWidth) / 2
	y := (screenHeight - barHeight) / 2

	renderer.SetDrawColor(trackColor.R, trackColor.G, trackColor.B, trackColor.A)
	renderer.FillRect(&sdl.Rect{X: x, Y: y, W: barWidth, H: barHeight})

	if filled := FillWidth(barWidth, fraction); filled > 0 {
		if err := ui.DrawGradientRect(renderer, sdl.Rect{X: x, Y: y, W: filled, H: barHeight}, fillStart, fillEnd, ui.Horizontal); err != nil {
			return err
		}
	}

	renderer.SetDrawColor(148, 163, 184, 255)
	renderer.DrawRect(&sdl.Rect{X: x, Y: y, W: barWidth, H: barHeight})

	if font == nil {
		return nil
	}
	caption := fmt.Sprintf("%s %d%%", w.Label, int(fraction*100+0.5))
	_, err := ui.RenderTextCentered(renderer, caption, screenWidth/2, y+barHeight+12, sdl.Color{R: 255, G: 255, B: 255, A: 255}, font)
	return err
}
