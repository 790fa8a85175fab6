package cutscene

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestLetterbox(t *testing.T) {
	tests := []struct {
		name          string
		screenW, scrH int32
		want          sdl.Rect
	}{
		{"wide screen pillarboxes", 1920, 500, sdl.Rect{X: 360, Y: 0, W: 1200, H: 500}},
		{"tall screen letterboxes", 1200, 1000, sdl.Rect{X: 0, Y: 250, W: 1200, H: 500}},
		{"exact fit", 600, 250, sdl.Rect{X: 0, Y: 0, W: 600, H: 250}},
	}
	for _, tc := range tests {
		if got := letterbox(600, 250, tc.screenW, tc.scrH); got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}
