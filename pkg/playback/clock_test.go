package playback

import (
	"image"
	"testing"
	"time"
)

func TestFrameClockIsElapsedBased(t *testing.T) {
	start := time.Unix(0, 0)
	var c FrameClock

	if c.FrameAt(start.Add(time.Hour)) != 0 {
		t.Error("stopped clock must report frame 0")
	}

	c.Start(start)
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{time.Second/15 - time.Nanosecond, 0},
		{time.Second / 15, 1},
		{time.Second, 15},
		{4900 * time.Millisecond, 73},
		{time.Hour, 54000},
	}
	for _, tc := range tests {
		if got := c.FrameAt(start.Add(tc.elapsed)); got != tc.want {
			t.Errorf("FrameAt(+%v) = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}

func TestFrameClockNeverGoesBackwards(t *testing.T) {
	start := time.Unix(100, 0)
	var c FrameClock
	c.Start(start)

	if got := c.FrameAt(start.Add(2 * time.Second)); got != 30 {
		t.Fatalf("FrameAt = %d, want 30", got)
	}
	if got := c.FrameAt(start.Add(time.Second)); got != 30 {
		t.Errorf("clock went backwards to %d", got)
	}

	c.Start(start.Add(10 * time.Second))
	if got := c.FrameAt(start.Add(10 * time.Second)); got != 0 {
		t.Errorf("restart did not reset to 0, got %d", got)
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		frame int
		sheet int
		src   image.Rectangle
	}{
		{0, 0, image.Rect(0, 0, 600, 250)},
		{1, 0, image.Rect(600, 0, 1200, 250)},
		{2, 0, image.Rect(1200, 0, 1800, 250)},
		{3, 0, image.Rect(0, 250, 600, 500)},
		{23, 0, image.Rect(1200, 1750, 1800, 2000)},
		{24, 1, image.Rect(0, 0, 600, 250)},
		{71, 2, image.Rect(1200, 1750, 1800, 2000)},
		{52, 2, image.Rect(1200, 0, 1800, 250)},
	}
	for _, tc := range tests {
		sheet, src := Locate(tc.frame)
		if sheet != tc.sheet || src != tc.src {
			t.Errorf("Locate(%d) = %d %v, want %d %v", tc.frame, sheet, src, tc.sheet, tc.src)
		}
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Idle: "idle", Loading: "loading", Playing: "playing", Stopped: "stopped", State(9): "unknown"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
