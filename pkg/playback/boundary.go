package playback

import (
	"context"

	"cutscene-player/pkg/prefetch"
	"cutscene-player/pkg/sharedTypes"
	"cutscene-player/pkg/sheetCache"
	"cutscene-player/pkg/timing"
)

// AudioHandle is whatever the audio sink uses to identify a loaded track.
type AudioHandle = any

// AudioSink is the audio output boundary. Play and Stop are only called from
// the main loop, at state transitions.
type AudioSink interface {
	Load(name string, data []byte) (AudioHandle, error)
	Play(h AudioHandle)
	Stop(h AudioHandle)
	Unload(h AudioHandle)
}

// Catalog resolves videos and their assets. *catalog.Catalog implements it.
type Catalog interface {
	Lookup(id sharedTypes.VideoID) (sharedTypes.VideoDescriptor, bool)
	Resolve(ctx context.Context, id sharedTypes.VideoID) (sharedTypes.VideoDescriptor, error)
	SheetKey(v sharedTypes.VideoDescriptor, index int) string
	ReadAudio(ctx context.Context, v sharedTypes.VideoDescriptor) ([]byte, error)
}

// SheetLoader reads and decodes a sheet on the calling goroutine. Used for
// the eager first sheet. *decoder.Pool implements it.
type SheetLoader interface {
	LoadSheet(ctx context.Context, key string, index int) (*sheetCache.Sheet, error)
}

// Deps is everything the controller talks to. Nothing is looked up globally.
type Deps struct {
	Clock     timing.TimeProvider
	Audio     AudioSink
	Catalog   Catalog
	Loader    SheetLoader
	Cache     *sheetCache.Cache
	Scheduler *prefetch.Scheduler

	// OnEvict runs after a video's sheets were dropped. Optional.
	OnEvict func(v sharedTypes.VideoDescriptor)

	// Debug logs every frame change.
	Debug bool
}
