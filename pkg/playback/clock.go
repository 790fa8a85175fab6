package playback

import (
	"image"
	"time"

	"cutscene-player/pkg/sharedTypes"
	"cutscene-player/pkg/sheetCache"
)

// FrameClock derives the frame index from the wall-clock time elapsed since
// an origin. Nothing is accumulated between ticks, so long playback does not
// drift.
type FrameClock struct {
	origin  time.Time
	running bool
	last    int
}

// Start anchors frame 0 at now.
func (c *FrameClock) Start(now time.Time) {
	c.origin = now
	c.running = true
	c.last = 0
}

// Stop clears the origin.
func (c *FrameClock) Stop() {
	c.origin = time.Time{}
	c.running = false
	c.last = 0
}

func (c *FrameClock) Running() bool {
	return c.running
}

// FrameAt returns floor((now-origin) * 15 / 1s). The result never goes
// backwards, even if now does.
func (c *FrameClock) FrameAt(now time.Time) int {
	if !c.running {
		return 0
	}
	elapsed := now.Sub(c.origin)
	if elapsed < 0 {
		elapsed = 0
	}
	frame := int(int64(elapsed) * sharedTypes.FramesPerSecond / int64(time.Second))
	if frame < c.last {
		frame = c.last
	}
	c.last = frame
	return frame
}

// Locate resolves a frame index to its sheet and the sub-rectangle of that
// sheet holding the frame.
func Locate(frame int) (sheetIndex int, src image.Rectangle) {
	if frame < 0 {
		frame = 0
	}
	sheetIndex = frame / sharedTypes.FramesPerSheet
	inSheet := frame % sharedTypes.FramesPerSheet
	row := inSheet / sharedTypes.SheetColumns
	col := inSheet % sharedTypes.SheetColumns

	x := col * sharedTypes.FrameWidth
	y := row * sharedTypes.FrameHeight
	return sheetIndex, image.Rect(x, y, x+sharedTypes.FrameWidth, y+sharedTypes.FrameHeight)
}

// DrawDescriptor tells the renderer which cached sheet to draw and which
// part of it holds the current frame. The renderer scales Src to the display.
type DrawDescriptor struct {
	Video      sharedTypes.VideoID
	Generation uint64
	Frame      int
	SheetIndex int
	Sheet      *sheetCache.Sheet
	Src        image.Rectangle
}
