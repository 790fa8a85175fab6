package playback

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cutscene-player/pkg/prefetch"
	"cutscene-player/pkg/sharedTypes"
)

// Controller is the playback state machine. Select and Stop change the
// selection; Update advances it once per main-loop tick. All methods must be
// called from the main loop.
type Controller struct {
	ctx  context.Context
	deps Deps

	state State
	video sharedTypes.VideoDescriptor
	last  sharedTypes.VideoID

	clock FrameClock
	frame int

	audio      AudioHandle
	audioReady bool

	err error
}

func NewController(ctx context.Context, deps Deps) *Controller {
	return &Controller{
		ctx:   ctx,
		deps:  deps,
		state: Idle,
		video: sharedTypes.VideoDescriptor{ID: sharedTypes.NoVideo},
		last:  sharedTypes.NoVideo,
	}
}

// Select starts the video with the given id. Selecting the video that is
// currently playing stops it; selecting the one already loading is a no-op.
func (c *Controller) Select(id sharedTypes.VideoID) error {
	if _, ok := c.deps.Catalog.Lookup(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownVideo, id)
	}

	switch c.state {
	case Playing:
		if id == c.video.ID {
			log.Printf("Playback: toggle off | video=%s", c.video.Name)
			c.enterStopped()
			return nil
		}
		c.enterStopped()
	case Loading:
		if id == c.video.ID {
			return nil
		}
		c.teardown()
	}
	return c.load(id)
}

// Stop ends the current session. It does nothing when Idle or Stopped.
func (c *Controller) Stop() {
	if c.state == Loading || c.state == Playing {
		c.enterStopped()
	}
}

func (c *Controller) load(id sharedTypes.VideoID) error {
	v, err := c.deps.Catalog.Resolve(c.ctx, id)
	if err != nil {
		c.setState(Idle)
		return fmt.Errorf("%w: %v", ErrUnknownVideo, err)
	}

	c.video = v
	c.last = id
	c.err = nil
	c.frame = 0
	c.audioReady = false
	c.setState(Loading)

	c.deps.Cache.Reset(v.ID, v.SheetCount)

	if v.SheetCount == 0 {
		c.deps.Scheduler.Reset()
		c.err = fmt.Errorf("%w: %s", ErrEmptyVideo, v.Name)
		log.Printf("Playback: %v", c.err)
		c.enterStopped()
		return c.err
	}

	first := 0
	sheet, err := c.deps.Loader.LoadSheet(c.ctx, c.deps.Catalog.SheetKey(v, 0), 0)
	if err != nil {
		log.Printf("Playback: first sheet failed, queueing it | video=%s | err=%v", v.Name, err)
	} else {
		c.deps.Cache.Insert(v.ID, 0, sheet)
		first = 1
	}
	c.deps.Scheduler.Begin(v, first)

	c.loadAudio()
	return nil
}

// loadAudio never fails the session; a video without audio plays silently.
func (c *Controller) loadAudio() {
	defer func() { c.audioReady = true }()

	if c.deps.Audio == nil {
		return
	}
	data, err := c.deps.Catalog.ReadAudio(c.ctx, c.video)
	if err != nil {
		log.Printf("Playback: audio unavailable, playing silently | video=%s | err=%v", c.video.Name, err)
		return
	}
	h, err := c.deps.Audio.Load(c.video.Name, data)
	if err != nil {
		log.Printf("Playback: audio load failed, playing silently | video=%s | err=%v", c.video.Name, err)
		return
	}
	c.audio = h
}

// Update advances the session by one tick.
func (c *Controller) Update() {
	now := c.deps.Clock.Now()
	c.deps.Scheduler.Tick(now)

	if err := c.deps.Scheduler.Err(); err != nil && c.err == nil && c.state != Idle {
		c.err = err
	}

	switch c.state {
	case Loading:
		if c.deps.Cache.Has(c.video.ID, 0) && c.audioReady {
			c.clock.Start(now)
			c.frame = 0
			c.setState(Playing)
			if c.audio != nil {
				c.deps.Audio.Play(c.audio)
			}
			return
		}
		if errors.Is(c.err, prefetch.ErrDecodeStall) {
			c.enterStopped()
		}

	case Playing:
		frame := c.clock.FrameAt(now)
		if frame >= c.video.TotalFrames() {
			log.Printf("Playback: reached end | video=%s | frames=%d", c.video.Name, c.video.TotalFrames())
			c.enterStopped()
			return
		}
		if c.deps.Debug && frame != c.frame {
			log.Printf("Playback: frame %d/%d", frame, c.video.TotalFrames())
		}
		c.frame = frame
	}
}

func (c *Controller) enterStopped() {
	if c.audio != nil {
		c.deps.Audio.Stop(c.audio)
	}
	c.teardown()
	c.clock.Stop()
	c.frame = 0
	c.setState(Stopped)
}

// teardown releases everything held for the current video.
func (c *Controller) teardown() {
	if c.audio != nil {
		c.deps.Audio.Unload(c.audio)
		c.audio = nil
	}
	c.audioReady = false
	c.deps.Scheduler.Reset()
	if c.deps.Cache.Video() == c.video.ID && c.video.ID != sharedTypes.NoVideo {
		c.deps.Cache.Evict(c.video.ID)
		if c.deps.OnEvict != nil {
			c.deps.OnEvict(c.video)
		}
	}
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	log.Printf("Playback: %s -> %s | video=%s", c.state, s, c.video.Name)
	c.state = s
}

// Frame returns what to draw this tick. ok is false while not Playing or
// when the frame's sheet has not been decoded yet.
func (c *Controller) Frame() (DrawDescriptor, bool) {
	if c.state != Playing {
		return DrawDescriptor{}, false
	}
	sheetIndex, src := Locate(c.frame)
	sheet, ok := c.deps.Cache.Get(c.video.ID, sheetIndex)
	if !ok {
		return DrawDescriptor{}, false
	}
	return DrawDescriptor{
		Video:      c.video.ID,
		Generation: c.deps.Scheduler.Generation(),
		Frame:      c.frame,
		SheetIndex: sheetIndex,
		Sheet:      sheet,
		Src:        src,
	}, true
}

// Progress is the fraction of the selected video's sheets that are cached.
func (c *Controller) Progress() float64 {
	if c.state != Loading && c.state != Playing {
		return 0
	}
	return c.deps.Cache.Fraction()
}

func (c *Controller) State() State {
	return c.state
}

// FrameIndex is the current frame, 0 outside Playing.
func (c *Controller) FrameIndex() int {
	return c.frame
}

// Video is the selected (or last selected) video.
func (c *Controller) Video() sharedTypes.VideoDescriptor {
	return c.video
}

// LastSelected is the id most recently passed to a successful Select.
func (c *Controller) LastSelected() sharedTypes.VideoID {
	return c.last
}

// Err is the error recorded for the current session, if any.
func (c *Controller) Err() error {
	return c.err
}

// Generation changes whenever cached sheets from an earlier selection become invalid.
func (c *Controller) Generation() uint64 {
	return c.deps.Scheduler.Generation()
}
