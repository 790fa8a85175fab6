package videoList

import (
	"fmt"

	"cutscene-player/pkg/sharedTypes"
	"cutscene-player/ui"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

const (
	itemHeight  = int32(80)
	itemSpacing = int32(12)
	headerSpace = int32(90)
)

// Widget is the cutscene selection menu
type Widget struct {
	items    []Item
	ids      []sharedTypes.VideoID
	selected int
	playing  sharedTypes.VideoID

	// Last layout, used for mouse hit testing
	x, y, width int32
}

// NewWidget builds one row per catalog entry
func NewWidget(videos []sharedTypes.VideoDescriptor) *Widget {
	w := &Widget{playing: sharedTypes.NoVideo}
	for i, v := range videos {
		colors := Palette[i%len(Palette)]
		subtitle := "Enter to play"
		if i < 9 {
			subtitle = fmt.Sprintf("Press %d or Enter to play", i+1)
		}
		w.items = append(w.items, Item{
			Title:      v.DisplayName(),
			Subtitle:   subtitle,
			ColorStart: colors[0],
			ColorEnd:   colors[1],
		})
		w.ids = append(w.ids, v.ID)
	}
	return w
}

// Items returns the current rows
func (w *Widget) Items() []Item {
	return w.items
}

// Selected returns the highlighted video
func (w *Widget) Selected() (sharedTypes.VideoID, bool) {
	if len(w.ids) == 0 {
		return sharedTypes.NoVideo, false
	}
	return w.ids[w.selected], true
}

// SetPlaying marks the row of the video on screen
func (w *Widget) SetPlaying(id sharedTypes.VideoID) {
	w.playing = id
}

// Highlight moves the selection to id if it is listed
func (w *Widget) Highlight(id sharedTypes.VideoID) {
	for i, v := range w.ids {
		if v == id {
			w.selected = i
			return
		}
	}
}

// MoveSelection moves selection up or down with wrapping
func (w *Widget) MoveSelection(delta int) {
	if len(w.items) == 0 {
		return
	}

	w.selected += delta
	if w.selected < 0 {
		w.selected = len(w.items) - 1
	} else if w.selected >= len(w.items) {
		w.selected = 0
	}
}

// HitTest returns the video under the given window coordinates
func (w *Widget) HitTest(mx, my int32) (sharedTypes.VideoID, bool) {
	if mx < w.x+40 || mx > w.x+w.width-40 {
		return sharedTypes.NoVideo, false
	}
	top := w.y + headerSpace
	for i := range w.items {
		rowY := top + int32(i)*(itemHeight+itemSpacing)
		if my >= rowY && my < rowY+itemHeight {
			w.selected = i
			return w.ids[i], true
		}
	}
	return sharedTypes.NoVideo, false
}

// Draw renders the menu
func (w *Widget) Draw(renderer *sdl.Renderer, x, y, width, height int32, largeFont, mediumFont, smallFont *ttf.Font) error {
	w.x, w.y, w.width = x, y, width

	if largeFont != nil {
		titleColor := sdl.Color{R: 255, G: 255, B: 255, A: 255}
		if _, err := ui.RenderText(renderer, "Cutscenes", x+40, y+20, titleColor, largeFont); err == nil && smallFont != nil {
			descColor := sdl.Color{R: 148, G: 163, B: 184, A: 255}
			ui.RenderText(renderer, "P replays the last one, S stops, M mutes", x+40, y+60, descColor, smallFont)
		}
	}

	for i, item := range w.items {
		rowY := y + headerSpace + int32(i)*(itemHeight+itemSpacing)
		if rowY+itemHeight > y+height {
			break
		}
		if err := DrawItem(renderer, item, x+40, rowY, width-80, itemHeight, i == w.selected, w.ids[i] == w.playing, mediumFont, smallFont); err != nil {
			return fmt.Errorf("failed to draw %q: %w", item.Title, err)
		}
	}

	return nil
}
