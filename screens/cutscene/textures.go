package cutscene

import (
	"fmt"

	"cutscene-player/pkg/sharedTypes"
	"cutscene-player/pkg/sheetCache"

	"github.com/veandco/go-sdl2/sdl"
)

func (g *CutsceneScreen) invalidateTextures() {
	for i := range g.textures {
		g.textures[i].valid = false
	}
}

// textureFor returns a texture holding sheet, uploading it into the least
// recently used slot when needed.
func (g *CutsceneScreen) textureFor(index int, sheet *sheetCache.Sheet) (*sdl.Texture, error) {
	g.useCounter++
	for i := range g.textures {
		t := &g.textures[i]
		if t.valid && t.index == index {
			t.used = g.useCounter
			return t.texture, nil
		}
	}

	slot := g.victim(-1)
	if slot < 0 {
		return nil, fmt.Errorf("sheet textures not initialized")
	}
	if err := g.upload(slot, index, sheet); err != nil {
		return nil, err
	}
	g.textures[slot].used = g.useCounter
	return g.textures[slot].texture, nil
}

// preloadNextSheet uploads the sheet after the current one as soon as it is
// cached, so crossing a sheet boundary never waits on an upload.
func (g *CutsceneScreen) preloadNextSheet() {
	current := g.ctrl.FrameIndex() / sharedTypes.FramesPerSheet
	next := current + 1

	for _, t := range g.textures {
		if t.valid && t.index == next {
			return
		}
	}
	sheet, ok := g.cache.Get(g.ctrl.Video().ID, next)
	if !ok {
		return
	}

	slot := g.victim(current)
	if slot < 0 {
		return
	}
	if err := g.upload(slot, next, sheet); err != nil {
		g.err = err
	}
}

// victim picks the slot to overwrite, never the one holding keep.
func (g *CutsceneScreen) victim(keep int) int {
	slot := -1
	for i, t := range g.textures {
		if t.texture == nil || (t.valid && t.index == keep) {
			continue
		}
		if !t.valid {
			return i
		}
		if slot < 0 || t.used < g.textures[slot].used {
			slot = i
		}
	}
	return slot
}

// upload copies the sheet row by row since the texture pitch may be padded.
func (g *CutsceneScreen) upload(slot, index int, sheet *sheetCache.Sheet) error {
	t := &g.textures[slot]
	t.valid = false

	pixels, pitch, err := t.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("failed to lock texture: %v", err)
	}
	defer t.texture.Unlock()

	rowBytes := sharedTypes.SheetWidth * 4
	srcPitch := sheet.Pitch()
	for y := 0; y < sharedTypes.SheetHeight; y++ {
		copy(pixels[y*pitch:y*pitch+rowBytes], sheet.Pix[y*srcPitch:y*srcPitch+rowBytes])
	}

	t.index = index
	t.valid = true
	return nil
}
