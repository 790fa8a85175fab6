package ui

import (
	"fmt"
	"log"

	"github.com/veandco/go-sdl2/ttf"
)

// Point sizes for the three text roles.
const (
	LargeSize  = 32
	MediumSize = 24
	SmallSize  = 18
)

var systemFonts = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
}

// Fonts holds one face per text role
type Fonts struct {
	Large  *ttf.Font // menu title
	Medium *ttf.Font // video titles, progress caption
	Small  *ttf.Font // hints, URLs, errors
	Path   string
}

// FontCandidates lists the files LoadFonts tries, preferred first.
func FontCandidates(preferred string) []string {
	if preferred == "" {
		return systemFonts
	}
	out := make([]string, 0, len(systemFonts)+1)
	out = append(out, preferred)
	for _, p := range systemFonts {
		if p != preferred {
			out = append(out, p)
		}
	}
	return out
}

// LoadFonts opens the first candidate that loads at every size. It returns
// ErrNoFont when none does; text is then skipped by the widgets.
func LoadFonts(preferred string) (*Fonts, error) {
	if !ttf.WasInit() {
		if err := ttf.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize TTF: %w", err)
		}
	}

	for _, path := range FontCandidates(preferred) {
		fonts, err := openFonts(path)
		if err != nil {
			continue
		}
		log.Printf("LoadFonts: using %s", path)
		return fonts, nil
	}
	return &Fonts{}, ErrNoFont
}

func openFonts(path string) (*Fonts, error) {
	f := &Fonts{Path: path}
	var err error
	if f.Large, err = ttf.OpenFont(path, LargeSize); err != nil {
		return nil, err
	}
	if f.Medium, err = ttf.OpenFont(path, MediumSize); err != nil {
		f.Close()
		return nil, err
	}
	if f.Small, err = ttf.OpenFont(path, SmallSize); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Close cleans up font resources
func (f *Fonts) Close() {
	for _, font := range []**ttf.Font{&f.Large, &f.Medium, &f.Small} {
		if *font != nil {
			(*font).Close()
			*font = nil
		}
	}
}
