package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cutscene-player/pkg/sharedTypes"
	"cutscene-player/pkg/sheetFs"
)

const DefaultMaxSheets = 256

// Catalog is the static registry of selectable videos. IDs are positions in
// the registry and never change for the lifetime of the process.
type Catalog struct {
	videos    []sharedTypes.VideoDescriptor
	source    sheetFs.Source
	ext       string
	maxSheets int

	cacheProbes bool
	probed      map[sharedTypes.VideoID]int
}

type Option func(*Catalog)

// WithExt sets the sheet file extension ("png" by default).
func WithExt(ext string) Option {
	return func(c *Catalog) {
		c.ext = strings.TrimPrefix(ext, ".")
	}
}

// WithMaxSheets caps how far Probe scans.
func WithMaxSheets(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.maxSheets = n
		}
	}
}

// WithProbeCache makes Probe remember each video's sheet count after the
// first scan instead of rescanning on every selection.
func WithProbeCache() Option {
	return func(c *Catalog) {
		c.cacheProbes = true
	}
}

// New builds a catalog over entries. Entries without a base path resolve to
// their name relative to the source root.
func New(source sheetFs.Source, entries []sharedTypes.VideoDescriptor, opts ...Option) *Catalog {
	c := &Catalog{
		source:    source,
		ext:       "png",
		maxSheets: DefaultMaxSheets,
		probed:    make(map[sharedTypes.VideoID]int),
	}
	for _, opt := range opts {
		opt(c)
	}

	for i, e := range entries {
		e.ID = sharedTypes.VideoID(i)
		if e.BasePath == "" {
			e.BasePath = e.Name
		}
		if e.AudioPath == "" {
			e.AudioPath = sheetFs.AudioKey(e.BasePath)
		}
		e.SheetCount = 0
		c.videos = append(c.videos, e)
	}
	return c
}

// Len returns the number of registered videos.
func (c *Catalog) Len() int {
	return len(c.videos)
}

// Videos returns a copy of the registry in ID order.
func (c *Catalog) Videos() []sharedTypes.VideoDescriptor {
	out := make([]sharedTypes.VideoDescriptor, len(c.videos))
	copy(out, c.videos)
	return out
}

// Lookup returns the descriptor registered under id. SheetCount is only
// filled in by Resolve.
func (c *Catalog) Lookup(id sharedTypes.VideoID) (sharedTypes.VideoDescriptor, bool) {
	if id < 0 || int(id) >= len(c.videos) {
		return sharedTypes.VideoDescriptor{}, false
	}
	return c.videos[id], true
}

// Find resolves a video name to its ID.
func (c *Catalog) Find(name string) (sharedTypes.VideoID, bool) {
	for _, v := range c.videos {
		if v.Name == name {
			return v.ID, true
		}
	}
	return sharedTypes.NoVideo, false
}

// Probe counts the consecutive sheets available for id, starting at index 0
// and stopping at the first missing index or at the configured cap. Storage
// errors are treated as missing.
func (c *Catalog) Probe(ctx context.Context, id sharedTypes.VideoID) int {
	v, ok := c.Lookup(id)
	if !ok {
		return 0
	}
	if c.cacheProbes {
		if n, ok := c.probed[id]; ok {
			return n
		}
	}

	count, truncated := c.scan(ctx, v)
	if truncated {
		log.Printf("Catalog: probe hit cap, more sheets exist | video=%s | max=%d", v.Name, c.maxSheets)
	}

	if c.cacheProbes && ctx.Err() == nil {
		c.probed[id] = count
	}
	log.Printf("Catalog: probed %s | sheets=%d | source=%s", v.Name, count, c.source.Describe())
	return count
}

// scan counts consecutive sheets up to the cap. truncated is set only when
// the sheet right after the cap exists too.
func (c *Catalog) scan(ctx context.Context, v sharedTypes.VideoDescriptor) (count int, truncated bool) {
	for count < c.maxSheets {
		if ctx.Err() != nil {
			return count, false
		}
		if !c.source.Exists(ctx, c.SheetKey(v, count)) {
			return count, false
		}
		count++
	}
	return count, ctx.Err() == nil && c.source.Exists(ctx, c.SheetKey(v, count))
}

// Resolve returns the descriptor for id with SheetCount discovered by Probe.
func (c *Catalog) Resolve(ctx context.Context, id sharedTypes.VideoID) (sharedTypes.VideoDescriptor, error) {
	v, ok := c.Lookup(id)
	if !ok {
		return sharedTypes.VideoDescriptor{}, fmt.Errorf("catalog: no video with id %d", id)
	}
	v.SheetCount = c.Probe(ctx, id)
	return v, nil
}

// SheetKey returns the storage key of sheet index of v.
func (c *Catalog) SheetKey(v sharedTypes.VideoDescriptor, index int) string {
	return sheetFs.SheetKey(v.BasePath, index, c.ext)
}

// ReadAudio returns the raw audio track of v.
func (c *Catalog) ReadAudio(ctx context.Context, v sharedTypes.VideoDescriptor) ([]byte, error) {
	return c.source.ReadAll(ctx, v.AudioPath)
}
