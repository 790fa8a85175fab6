package main

import (
	"log"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/veandco/go-sdl2/sdl"

	"cutscene-player/pkg/config"
	"cutscene-player/screens/root"
)

func main() {
	// SDL calls must stay on the main thread
	runtime.LockOSThread()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()
	setupMemoryManagement(cfg.MemoryLimitMB)

	if err := initSDL(cfg.VideoDriver); err != nil {
		log.Fatalf("Failed to initialize SDL2: %v", err)
	}
	defer func() {
		log.Println("Shutting down SDL2...")
		sdl.Quit()
	}()

	window, err := createWindow(cfg)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := createRenderer(window)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	screen, err := root.NewRootScreen(window, renderer, cfg)
	if err != nil {
		log.Fatalf("Failed to create root screen: %v", err)
	}
	defer screen.Close()

	run(screen, cfg.TargetFPS)

	log.Printf("%s shutting down...", cfg.WindowTitle)
}

// setupMemoryManagement configures the GC for large, long-lived sheet buffers.
// limitMB of 0 leaves the runtime without a soft memory limit.
func setupMemoryManagement(limitMB int) {
	os.Setenv("GODEBUG", "madvdontneed=1")

	// Sheets are freed in bulk on eviction, return the pages promptly
	debug.SetGCPercent(50)
	if limitMB > 0 {
		debug.SetMemoryLimit(int64(limitMB) << 20)
	}

	log.Printf("Memory management configured: GOGC=50, limit=%dMiB, GOMAXPROCS=%d", limitMB, runtime.GOMAXPROCS(0))
}
