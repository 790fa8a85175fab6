package sheetFs

import (
	"context"
	"errors"
	"fmt"
	"path"
)

// ErrNotFound is returned by Source.ReadAll when the key does not exist.
var ErrNotFound = errors.New("sheetFs: object not found")

// Source abstracts the storage holding sprite sheets and audio tracks.
// Keys are slash separated regardless of the backend.
type Source interface {
	// Exists reports whether key names a readable object. Any storage
	// error counts as "missing".
	Exists(ctx context.Context, key string) bool
	// ReadAll returns the full contents of key.
	ReadAll(ctx context.Context, key string) ([]byte, error)
	// Describe returns a short human-readable location for logs.
	Describe() string
}

// SheetKey returns the key of sheet index under basePath, e.g.
// movies/c_berlin/sprite_sheet_007.png.
func SheetKey(basePath string, index int, ext string) string {
	return path.Join(basePath, fmt.Sprintf("sprite_sheet_%03d.%s", index, ext))
}

// AudioKey returns the key of the audio track paired with basePath.
func AudioKey(basePath string) string {
	return path.Join(basePath, "audio.wav")
}
