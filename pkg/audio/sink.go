package audio

import (
	"bytes"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"cutscene-player/pkg/settings"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Track is a decoded audio.wav held in memory so it can be replayed from
// the start.
type Track struct {
	Name   string
	format beep.Format
	buffer *beep.Buffer

	ctrl   *beep.Ctrl
	volume *effects.Volume
}

// Duration is the length of the decoded track.
func (t *Track) Duration() time.Duration {
	if t.buffer == nil {
		return 0
	}
	return t.format.SampleRate.D(t.buffer.Len())
}

// Sink plays cutscene soundtracks through the speaker. Until Initialize
// succeeds every playback call is a silent no-op, so a machine without an
// audio device still plays video.
type Sink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool

	volume  float64
	muted   bool
	playing map[*Track]struct{}
}

// NewSink creates a sink at the given volume (beep exponent, base 2).
func NewSink(volume float64, muted bool) *Sink {
	return &Sink{
		mixer:   &beep.Mixer{},
		volume:  settings.ClampVolume(volume),
		muted:   muted,
		playing: make(map[*Track]struct{}),
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (s *Sink) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(s.mixer)
	s.initialized = true
	log.Printf("Audio: speaker initialized | rate=%d", sampleRate)
	return nil
}

// Cleanup silences everything. beep has no speaker Close, clearing the
// mixer is enough to stop output.
func (s *Sink) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.playing = make(map[*Track]struct{})
	s.initialized = false
}

// Load decodes a PCM wav track. It works without an initialized speaker.
func (s *Sink) Load(name string, data []byte) (any, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", name, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: read %s: %w", name, err)
	}

	t := &Track{Name: name, format: format, buffer: buffer}
	log.Printf("Audio: loaded %s | rate=%d | channels=%d | duration=%s",
		name, format.SampleRate, format.NumChannels, t.Duration())
	return t, nil
}

// Play starts h from the beginning.
func (s *Sink) Play(h any) {
	t, ok := h.(*Track)
	if !ok || t.buffer == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	s.detachLocked(t)

	var streamer beep.Streamer = t.buffer.Streamer(0, t.buffer.Len())
	if t.format.SampleRate != sampleRate {
		streamer = beep.Resample(4, t.format.SampleRate, sampleRate, streamer)
	}

	t.volume = &effects.Volume{Streamer: streamer, Base: 2, Volume: s.volume, Silent: s.muted}
	t.ctrl = &beep.Ctrl{Streamer: t.volume, Paused: false}

	speaker.Lock()
	s.mixer.Add(t.ctrl)
	speaker.Unlock()
	s.playing[t] = struct{}{}
}

// Stop silences h. The decoded samples stay loaded so Play can restart it.
func (s *Sink) Stop(h any) {
	t, ok := h.(*Track)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.detachLocked(t)
}

// Unload releases the decoded samples of h.
func (s *Sink) Unload(h any) {
	t, ok := h.(*Track)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.detachLocked(t)
	t.buffer = nil
}

// detachLocked removes t from the mixer. A Ctrl without a streamer reports
// itself drained and the mixer drops it on the next pass.
func (s *Sink) detachLocked(t *Track) {
	if t.ctrl != nil && s.initialized {
		speaker.Lock()
		t.ctrl.Paused = true
		t.ctrl.Streamer = nil
		speaker.Unlock()
	}
	t.ctrl = nil
	t.volume = nil
	delete(s.playing, t)
}

// SetVolume changes the volume of the current and future tracks.
func (s *Sink) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = settings.ClampVolume(volume)
	s.applyLocked()
}

// SetMuted silences or restores output.
func (s *Sink) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
	s.applyLocked()
}

func (s *Sink) Volume() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume, s.muted
}

func (s *Sink) applyLocked() {
	if !s.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	for t := range s.playing {
		if t.volume == nil {
			continue
		}
		t.volume.Volume = s.volume
		t.volume.Silent = s.muted
	}
}

// Active returns how many tracks are currently attached to the mixer.
func (s *Sink) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.playing)
}
