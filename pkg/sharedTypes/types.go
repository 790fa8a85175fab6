package sharedTypes

import "time"

// Sheet format. Every sheet is a 3 wide by 8 tall grid of equally sized frames,
// played back at a constant 15 frames per second.
const (
	SheetColumns    = 3
	SheetRows       = 8
	FramesPerSheet  = SheetColumns * SheetRows
	FrameWidth      = 600
	FrameHeight     = 250
	SheetWidth      = SheetColumns * FrameWidth
	SheetHeight     = SheetRows * FrameHeight
	FramesPerSecond = 15

	FrameDuration = time.Second / FramesPerSecond
)

// VideoID is the stable catalog index of a selectable video.
type VideoID int

// NoVideo marks the absence of a selection.
const NoVideo VideoID = -1

// VideoDescriptor describes one selectable animation-plus-audio pair.
type VideoDescriptor struct {
	ID         VideoID `json:"-"`
	Name       string  `json:"name"`
	Title      string  `json:"title,omitempty"`
	BasePath   string  `json:"basePath,omitempty"`
	AudioPath  string  `json:"audioPath,omitempty"`
	SheetCount int     `json:"-"` // discovered by probing, never declared
}

// TotalFrames returns the number of frames the discovered sheets hold.
func (v VideoDescriptor) TotalFrames() int {
	if v.SheetCount <= 0 {
		return 0
	}
	return v.SheetCount * FramesPerSheet
}

// DisplayName returns Title when set, Name otherwise.
func (v VideoDescriptor) DisplayName() string {
	if v.Title != "" {
		return v.Title
	}
	return v.Name
}
