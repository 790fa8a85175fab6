package cutscene

import (
	"context"
	"fmt"
	"log"
	"time"

	"cutscene-player/pkg/audio"
	"cutscene-player/pkg/catalog"
	"cutscene-player/pkg/config"
	"cutscene-player/pkg/decoder"
	"cutscene-player/pkg/performance"
	"cutscene-player/pkg/playback"
	"cutscene-player/pkg/prefetch"
	"cutscene-player/pkg/settings"
	"cutscene-player/pkg/sharedTypes"
	"cutscene-player/pkg/sheetCache"
	"cutscene-player/pkg/sheetFs"
	"cutscene-player/pkg/timing"

	"github.com/veandco/go-sdl2/sdl"
)

const retryBackoff = 500 * time.Millisecond

// openSource picks the storage backend named by the configuration.
func openSource(cfg config.Config) (sheetFs.Source, error) {
	if cfg.SheetSource == config.SourceS3 {
		return sheetFs.NewS3Source(cfg.S3Bucket, cfg.S3Prefix)
	}
	return sheetFs.NewLocalSource(cfg.MoviesDir), nil
}

// NewCutsceneScreen builds the streaming core from the configuration.
func NewCutsceneScreen(cfg config.Config, prefs settings.Settings) (*CutsceneScreen, error) {
	source, err := openSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet source: %w", err)
	}

	entries, err := catalog.LoadEntries(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	opts := []catalog.Option{catalog.WithExt(cfg.SheetExt), catalog.WithMaxSheets(cfg.MaxSheets)}
	if cfg.SheetSource == config.SourceS3 {
		// Every probe is a round trip there.
		opts = append(opts, catalog.WithProbeCache())
	}
	cat := catalog.New(source, entries, opts...)

	pool := decoder.NewPool(source, cfg.DecodeWorkers, cfg.DecodeTimeout)
	pool.Start()

	cache := sheetCache.New()
	monitor := performance.NewPerformanceMonitor(32)
	scheduler := prefetch.New(pool, cache, cat.SheetKey, prefetch.Options{
		Timeout:    cfg.DecodeTimeout,
		MaxRetries: cfg.DecodeRetries,
		Backoff:    retryBackoff,
		Debug:      cfg.DebugFrames,
	})
	scheduler.SetMonitor(monitor)

	sink := audio.NewSink(prefs.Volume, prefs.Muted)
	if err := sink.Initialize(); err != nil {
		log.Printf("Warning: audio unavailable, cutscenes will play silently: %v", err)
	}

	ctrl := playback.NewController(context.Background(), playback.Deps{
		Clock:     timing.NewRealTimeProvider(),
		Audio:     sink,
		Catalog:   cat,
		Loader:    pool,
		Cache:     cache,
		Scheduler: scheduler,
		OnEvict: func(v sharedTypes.VideoDescriptor) {
			performance.LogMemorySnapshot("evicted " + v.Name)
		},
		Debug: cfg.DebugFrames,
	})

	log.Printf("NewCutsceneScreen: %d videos | source=%s | ext=%s", cat.Len(), source.Describe(), cfg.SheetExt)

	return &CutsceneScreen{
		catalog:     cat,
		pool:        pool,
		cache:       cache,
		scheduler:   scheduler,
		ctrl:        ctrl,
		audio:       sink,
		perfMonitor: monitor,
		lastFrame:   -1,
		lastPerfLog: time.Now(),
	}, nil
}

// SetRenderer configures the SDL2 renderer and allocates the sheet textures
func (g *CutsceneScreen) SetRenderer(renderer *sdl.Renderer) error {
	g.renderer = renderer
	if renderer == nil {
		return nil
	}

	info, err := renderer.GetInfo()
	if err == nil {
		log.Printf("Renderer: %s (accelerated=%v, maxTexture=%dx%d)",
			info.Name, info.Flags&sdl.RENDERER_ACCELERATED != 0,
			info.MaxTextureWidth, info.MaxTextureHeight)
		if info.MaxTextureWidth != 0 && (info.MaxTextureWidth < sharedTypes.SheetWidth || info.MaxTextureHeight < sharedTypes.SheetHeight) {
			log.Printf("Warning: renderer max texture is smaller than a %dx%d sheet", sharedTypes.SheetWidth, sharedTypes.SheetHeight)
		}
	}

	for i := range g.textures {
		tex, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGBA32), sdl.TEXTUREACCESS_STREAMING,
			sharedTypes.SheetWidth, sharedTypes.SheetHeight)
		if err != nil {
			return fmt.Errorf("failed to create sheet texture: %v", err)
		}
		g.textures[i] = sheetTexture{texture: tex}
	}

	performance.LogMemorySnapshot("renderer ready")
	return nil
}

// Catalog exposes the registry for menus and the remote API.
func (g *CutsceneScreen) Catalog() *catalog.Catalog {
	return g.catalog
}

func (g *CutsceneScreen) Select(id sharedTypes.VideoID) error {
	g.lastFrame = -1
	return g.ctrl.Select(id)
}

func (g *CutsceneScreen) Stop() {
	g.ctrl.Stop()
}

// ToggleLast replays the last selected video, or stops it while it plays.
// With no previous selection it starts the first catalog entry.
func (g *CutsceneScreen) ToggleLast() error {
	id := g.ctrl.LastSelected()
	if id == sharedTypes.NoVideo {
		id = 0
	}
	return g.Select(id)
}

func (g *CutsceneScreen) State() playback.State {
	return g.ctrl.State()
}

func (g *CutsceneScreen) Progress() float64 {
	return g.ctrl.Progress()
}

func (g *CutsceneScreen) Status() playback.Status {
	return g.ctrl.Snapshot()
}

// Err returns the error of the current session (empty video, decode stall).
func (g *CutsceneScreen) Err() error {
	return g.ctrl.Err()
}

func (g *CutsceneScreen) SetVolume(v float64) {
	g.audio.SetVolume(v)
}

func (g *CutsceneScreen) SetMuted(m bool) {
	g.audio.SetMuted(m)
}

// Update advances the stream and the playback clock
func (g *CutsceneScreen) Update() error {
	g.ctrl.Update()

	if gen := g.ctrl.Generation(); gen != g.texGen {
		g.invalidateTextures()
		g.texGen = gen
	}

	if g.ctrl.State() == playback.Playing {
		if frame := g.ctrl.FrameIndex(); frame != g.lastFrame {
			_, shown := g.ctrl.Frame()
			g.perfMonitor.RecordFrame(shown)
			g.lastFrame = frame
		}
		g.preloadNextSheet()
	} else {
		g.lastFrame = -1
	}

	g.logPerformanceMetrics()
	return g.err
}

// Draw renders the current frame letterboxed. Nothing is drawn while the
// frame's sheet is still decoding.
func (g *CutsceneScreen) Draw(renderer *sdl.Renderer, screenWidth, screenHeight int32) error {
	if g.err != nil {
		return g.err
	}

	desc, ok := g.ctrl.Frame()
	if !ok {
		return nil
	}

	texture, err := g.textureFor(desc.SheetIndex, desc.Sheet)
	if err != nil {
		return err
	}

	src := sdl.Rect{
		X: int32(desc.Src.Min.X),
		Y: int32(desc.Src.Min.Y),
		W: int32(desc.Src.Dx()),
		H: int32(desc.Src.Dy()),
	}
	dst := letterbox(src.W, src.H, screenWidth, screenHeight)
	return renderer.Copy(texture, &src, &dst)
}

// letterbox fits a frameWidth x frameHeight region inside the screen,
// centered, keeping its aspect ratio.
func letterbox(frameWidth, frameHeight, screenWidth, screenHeight int32) sdl.Rect {
	scaleW := float64(screenWidth) / float64(frameWidth)
	scaleH := float64(screenHeight) / float64(frameHeight)
	scale := scaleW
	if scaleH < scaleW {
		scale = scaleH
	}

	renderWidth := int32(float64(frameWidth) * scale)
	renderHeight := int32(float64(frameHeight) * scale)

	return sdl.Rect{
		X: (screenWidth - renderWidth) / 2,
		Y: (screenHeight - renderHeight) / 2,
		W: renderWidth,
		H: renderHeight,
	}
}

// logPerformanceMetrics logs streaming stats every 5 seconds
func (g *CutsceneScreen) logPerformanceMetrics() {
	now := time.Now()
	if now.Sub(g.lastPerfLog) < 5*time.Second {
		return
	}
	g.lastPerfLog = now

	if g.ctrl.State() != playback.Playing && g.ctrl.State() != playback.Loading {
		return
	}

	report := g.perfMonitor.GetReport()
	healthStatus := "OK"
	if !report.IsHealthy {
		healthStatus = "DEGRADED"
	}
	if g.perfMonitor.IsPerformanceDegrading() {
		healthStatus = "WARNING"
	}

	log.Printf("Performance[%s]: Decode=%.1fms Drain=%.2fms Sheets=%d Cached=%d/%d (%dMB) Gaps=%d (%.1f%%) Stale=%d Retries=%d Timeouts=%d",
		healthStatus,
		report.AvgDecodeMs,
		report.AvgDrainMs,
		report.SheetsDecoded,
		g.cache.Len(), g.cache.Capacity(), g.cache.Bytes()>>20,
		report.BufferingGaps,
		report.GapRate,
		report.StaleDrops,
		report.Retries,
		report.Timeouts)
}

// Close stops the workers and frees textures and audio.
func (g *CutsceneScreen) Close() {
	g.ctrl.Stop()
	g.pool.Close()
	g.audio.Cleanup()
	for i := range g.textures {
		if g.textures[i].texture != nil {
			g.textures[i].texture.Destroy()
			g.textures[i] = sheetTexture{}
		}
	}
}
