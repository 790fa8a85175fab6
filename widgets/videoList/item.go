package videoList

import (
	"cutscene-player/ui"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// DrawItem renders a single menu row with gradient
func DrawItem(renderer *sdl.Renderer, item Item, x, y, width, height int32, selected, playing bool, titleFont, smallFont *ttf.Font) error {
	if err := ui.DrawGradientRect(renderer, sdl.Rect{X: x, Y: y, W: width, H: height}, item.ColorStart, item.ColorEnd, ui.Vertical); err != nil {
		return err
	}

	if selected {
		renderer.SetDrawColor(255, 255, 255, 255)
		for i := 0; i < 3; i++ {
			renderer.DrawRect(&sdl.Rect{X: x - int32(i), Y: y - int32(i), W: width + int32(i*2), H: height + int32(i*2)})
		}
	}

	if titleFont != nil {
		titleColor := sdl.Color{R: 255, G: 255, B: 255, A: 255}
		title := item.Title
		if playing {
			title = "> " + title
		}
		title = ui.FitText(title, width-40, ui.Measure(titleFont))
		if _, err := ui.RenderText(renderer, title, x+20, y+12, titleColor, titleFont); err != nil {
			return err
		}
	}

	if smallFont != nil {
		descColor := sdl.Color{R: 255, G: 255, B: 255, A: 200}
		if _, err := ui.RenderText(renderer, item.Subtitle, x+20, y+height-30, descColor, smallFont); err != nil {
			return err
		}
	}

	return nil
}
