package playback

import "cutscene-player/pkg/sharedTypes"

// Status is a point-in-time view of the controller for status displays and
// the remote API.
type Status struct {
	State        string  `json:"state"`
	Video        string  `json:"video,omitempty"`
	Title        string  `json:"title,omitempty"`
	Frame        int     `json:"frame"`
	TotalFrames  int     `json:"totalFrames"`
	SheetsCached int     `json:"sheetsCached"`
	SheetCount   int     `json:"sheetCount"`
	Progress     float64 `json:"progress"`
	Generation   uint64  `json:"generation"`
	Error        string  `json:"error,omitempty"`
}

// Snapshot captures the current status.
func (c *Controller) Snapshot() Status {
	st := Status{
		State:      c.state.String(),
		Frame:      c.frame,
		Progress:   c.Progress(),
		Generation: c.Generation(),
	}
	if c.video.ID != sharedTypes.NoVideo {
		st.Video = c.video.Name
		st.Title = c.video.DisplayName()
		st.TotalFrames = c.video.TotalFrames()
		st.SheetCount = c.video.SheetCount
	}
	if c.state == Loading || c.state == Playing {
		st.SheetsCached = c.deps.Cache.Len()
	}
	if c.err != nil {
		st.Error = c.err.Error()
	}
	return st
}
