package sheetCache

import (
	"log"

	"cutscene-player/pkg/sharedTypes"
)

// Cache holds the decoded sheets of exactly one video. Slots go from absent
// to present once and are never overwritten; the only removal is evicting
// the whole video.
//
// Cache is not safe for concurrent use. Only the main loop touches it.
type Cache struct {
	video sharedTypes.VideoID
	slots []*Sheet

	present int
	bytes   int
}

// New creates an empty cache with no active video.
func New() *Cache {
	return &Cache{video: sharedTypes.NoVideo}
}

// Reset evicts whatever is cached and prepares sheetCount absent slots for video.
func (c *Cache) Reset(video sharedTypes.VideoID, sheetCount int) {
	if c.video != sharedTypes.NoVideo {
		c.Evict(c.video)
	}
	if sheetCount < 0 {
		sheetCount = 0
	}
	c.video = video
	c.slots = make([]*Sheet, sheetCount)
}

// Video returns the video the cache currently belongs to.
func (c *Cache) Video() sharedTypes.VideoID {
	return c.video
}

// Get returns the sheet at index for video, if present.
func (c *Cache) Get(video sharedTypes.VideoID, index int) (*Sheet, bool) {
	if video != c.video || index < 0 || index >= len(c.slots) {
		return nil, false
	}
	s := c.slots[index]
	return s, s != nil
}

// Has reports whether the slot is present.
func (c *Cache) Has(video sharedTypes.VideoID, index int) bool {
	_, ok := c.Get(video, index)
	return ok
}

// Insert stores sheet at index. It returns false, leaving the cache untouched,
// when the video is not the active one, the index is out of range, or the
// slot is already present.
func (c *Cache) Insert(video sharedTypes.VideoID, index int, sheet *Sheet) bool {
	if sheet == nil || video != c.video || index < 0 || index >= len(c.slots) {
		return false
	}
	if c.slots[index] != nil {
		return false
	}
	c.slots[index] = sheet
	c.present++
	c.bytes += sheet.Bytes()
	return true
}

// Evict drops every sheet of video. Evicting a video that is not cached is a no-op.
func (c *Cache) Evict(video sharedTypes.VideoID) {
	if video != c.video || c.video == sharedTypes.NoVideo {
		return
	}
	log.Printf("SheetCache: evicting video %d | sheets=%d | bytes=%d", video, c.present, c.bytes)
	for i := range c.slots {
		c.slots[i] = nil
	}
	c.slots = nil
	c.present = 0
	c.bytes = 0
	c.video = sharedTypes.NoVideo
}

// Len returns the number of present slots.
func (c *Cache) Len() int {
	return c.present
}

// Capacity returns the number of slots (present or absent).
func (c *Cache) Capacity() int {
	return len(c.slots)
}

// Bytes returns the resident size of all present sheets.
func (c *Cache) Bytes() int {
	return c.bytes
}

// Prefix returns the length of the run of present slots starting at index 0.
func (c *Cache) Prefix() int {
	n := 0
	for n < len(c.slots) && c.slots[n] != nil {
		n++
	}
	return n
}

// Fraction returns present/capacity in [0,1]; 0 when there are no slots.
func (c *Cache) Fraction() float64 {
	if len(c.slots) == 0 {
		return 0
	}
	return float64(c.present) / float64(len(c.slots))
}
