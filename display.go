package main

import (
	"fmt"
	"log"

	"github.com/veandco/go-sdl2/sdl"

	"cutscene-player/pkg/config"
	"cutscene-player/pkg/sharedTypes"
)

// initSDL starts the video subsystem. Audio goes through beep, not SDL.
func initSDL(driver string) error {
	if driver != "" {
		sdl.SetHint(sdl.HINT_VIDEODRIVER, driver)
	}
	// Frames are upscaled from 600x250, smooth them
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "1")
	sdl.SetHint(sdl.HINT_VIDEO_MINIMIZE_ON_FOCUS_LOSS, "0")

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("SDL_INIT_VIDEO failed: %w", err)
	}

	name, err := sdl.GetCurrentVideoDriver()
	if err != nil {
		return fmt.Errorf("failed to get video driver: %w", err)
	}
	log.Printf("initSDL: video driver %s", name)
	return nil
}

// frameWindowSize returns a width x height window with the frame aspect,
// shrunk to fit inside maxWidth x maxHeight when those are known.
func frameWindowSize(width, maxWidth, maxHeight int32) (int32, int32) {
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	height := width * sharedTypes.FrameHeight / sharedTypes.FrameWidth
	if maxHeight > 0 && height > maxHeight {
		height = maxHeight
		width = height * sharedTypes.FrameWidth / sharedTypes.FrameHeight
	}
	return width, height
}

func createWindow(cfg config.Config) (*sdl.Window, error) {
	var displayW, displayH int32
	if mode, err := sdl.GetDesktopDisplayMode(0); err == nil {
		displayW, displayH = mode.W, mode.H
		log.Printf("createWindow: display %dx%d @ %dHz", mode.W, mode.H, mode.RefreshRate)
	} else {
		log.Printf("Warning: failed to get display mode: %v", err)
	}

	var flags uint32 = sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI
	width, height := frameWindowSize(int32(cfg.WindowWidth), displayW, displayH)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	window, err := sdl.CreateWindow(cfg.WindowTitle, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, flags)
	if err != nil {
		return nil, err
	}
	window.SetMinimumSize(sharedTypes.FrameWidth, sharedTypes.FrameHeight)
	log.Printf("createWindow: %dx%d | fullscreen=%v", width, height, cfg.Fullscreen)
	return window, nil
}

// createRenderer prefers an accelerated, vsynced renderer and falls back to
// software. Sheet textures are 1800x2000, so a renderer that cannot hold one
// is rejected too.
func createRenderer(window *sdl.Window) (*sdl.Renderer, error) {
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err == nil && !fitsSheet(renderer) {
		renderer.Destroy()
		renderer, err = nil, fmt.Errorf("max texture size below %dx%d", sharedTypes.SheetWidth, sharedTypes.SheetHeight)
	}
	if err != nil {
		log.Printf("Hardware renderer unavailable, using software: %v", err)
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			return nil, err
		}
	}

	// Menus and the progress bar are drawn translucent over the frame
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	return renderer, nil
}

func fitsSheet(renderer *sdl.Renderer) bool {
	info, err := renderer.GetInfo()
	if err != nil || info.MaxTextureWidth == 0 {
		return true
	}
	return info.MaxTextureWidth >= sharedTypes.SheetWidth && info.MaxTextureHeight >= sharedTypes.SheetHeight
}
