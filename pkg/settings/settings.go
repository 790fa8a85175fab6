package settings

import (
	"encoding/json"
	"os"
)

const (
	MinVolume = -6.0
	MaxVolume = 1.0
)

// Settings represents user-tunable configuration that should persist across
// application restarts.
type Settings struct {
	// Volume is a base-2 gain exponent: 0 plays the track as recorded, -1 halves it.
	Volume    float64 `json:"volume"`
	Muted     bool    `json:"muted"`
	LastVideo string  `json:"lastVideo,omitempty"`
}

var defaultSettings = Settings{
	Volume: 0,
}

// Defaults returns the settings used when nothing has been saved yet.
func Defaults() Settings {
	return defaultSettings
}

// Load reads the settings file from disk. When the file is missing or cannot
// be parsed, sane defaults are returned instead so the application can
// continue running.
func Load(filename string) Settings {
	f, err := os.Open(filename)
	if err != nil {
		// No existing file – return defaults.
		return defaultSettings
	}
	defer f.Close()

	var s Settings
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		// Malformed file – fall back to defaults.
		return defaultSettings
	}

	s.Volume = ClampVolume(s.Volume)
	return s
}

// Save writes the provided settings to disk, creating the file when
// necessary. Any error is returned to the caller so it can be logged.
func Save(filename string, s Settings) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// ClampVolume keeps v inside [MinVolume, MaxVolume].
func ClampVolume(v float64) float64 {
	if v < MinVolume {
		return MinVolume
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}
