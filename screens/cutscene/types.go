package cutscene

import (
	"time"

	"cutscene-player/pkg/audio"
	"cutscene-player/pkg/catalog"
	"cutscene-player/pkg/decoder"
	"cutscene-player/pkg/performance"
	"cutscene-player/pkg/playback"
	"cutscene-player/pkg/prefetch"
	"cutscene-player/pkg/sheetCache"

	"github.com/veandco/go-sdl2/sdl"
)

// CutsceneScreen wires the streaming core to SDL: it owns the decode pool,
// the sheet cache and the playback controller, uploads cached sheets to
// textures and draws the current frame letterboxed.
type CutsceneScreen struct {
	catalog   *catalog.Catalog
	pool      *decoder.Pool
	cache     *sheetCache.Cache
	scheduler *prefetch.Scheduler
	ctrl      *playback.Controller
	audio     *audio.Sink

	perfMonitor *performance.PerformanceMonitor

	// SDL2-specific fields
	renderer   *sdl.Renderer
	textures   [2]sheetTexture
	texGen     uint64 // controller generation the textures were uploaded under
	useCounter uint64

	// Frame bookkeeping for gap accounting
	lastFrame int

	lastPerfLog time.Time
	err         error
}

// sheetTexture is one uploaded sheet. Two are kept so the next sheet can be
// uploaded while the current one is still on screen.
type sheetTexture struct {
	texture *sdl.Texture
	index   int
	valid   bool
	used    uint64
}
