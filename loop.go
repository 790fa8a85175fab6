package main

import (
	"errors"
	"log"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"cutscene-player/screens/root"
)

// frameLimiter paces the loop against absolute deadlines so a slow tick does
// not shift every later one.
type frameLimiter struct {
	interval time.Duration
	next     time.Time
}

func newFrameLimiter(fps int, start time.Time) *frameLimiter {
	if fps < 1 {
		fps = 1
	}
	interval := time.Second / time.Duration(fps)
	return &frameLimiter{interval: interval, next: start.Add(interval)}
}

// delay returns how long to sleep at now before the next tick. After falling
// more than a whole interval behind it resynchronizes instead of bursting.
func (l *frameLimiter) delay(now time.Time) time.Duration {
	d := l.next.Sub(now)
	if d < -l.interval {
		l.next = now.Add(l.interval)
		return 0
	}
	l.next = l.next.Add(l.interval)
	if d < 0 {
		return 0
	}
	return d
}

// run drives the root screen until the window closes or the user quits.
func run(screen *root.RootScreen, fps int) {
	limiter := newFrameLimiter(fps, time.Now())

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return
			}
		}

		if err := screen.Update(); err != nil {
			if !errors.Is(err, root.ErrQuit) {
				log.Printf("Update error: %v", err)
			}
			return
		}
		if err := screen.Draw(); err != nil {
			log.Printf("Draw error: %v", err)
			return
		}

		if d := limiter.delay(time.Now()); d > 0 {
			time.Sleep(d)
		}
	}
}
