package ui

import "github.com/veandco/go-sdl2/sdl"

type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

// Lerp mixes start and end, t in [0,1].
func Lerp(start, end [3]uint8, t float64) [3]uint8 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	var c [3]uint8
	for i := range c {
		c[i] = uint8(float64(start[i])*(1-t) + float64(end[i])*t + 0.5)
	}
	return c
}

// DrawGradientRect fills rect one line at a time, from start to end along dir.
func DrawGradientRect(renderer *sdl.Renderer, rect sdl.Rect, start, end [3]uint8, dir Direction) error {
	steps := rect.H
	if dir == Horizontal {
		steps = rect.W
	}
	for i := int32(0); i < steps; i++ {
		t := 0.0
		if steps > 1 {
			t = float64(i) / float64(steps-1)
		}
		c := Lerp(start, end, t)
		if err := renderer.SetDrawColor(c[0], c[1], c[2], 255); err != nil {
			return err
		}

		var err error
		if dir == Horizontal {
			err = renderer.DrawLine(rect.X+i, rect.Y, rect.X+i, rect.Y+rect.H-1)
		} else {
			err = renderer.DrawLine(rect.X, rect.Y+i, rect.X+rect.W-1, rect.Y+i)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
