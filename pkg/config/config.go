package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceLocal = "local"
	SourceS3    = "s3"
)

// Config holds the process-wide settings read from the environment (and an
// optional .env file). Anything a user tweaks at runtime lives in the
// settings package instead.
type Config struct {
	WindowTitle string
	TargetFPS   int
	// WindowWidth is the windowed-mode width; the height follows the frame aspect.
	WindowWidth int
	Fullscreen  bool
	VideoDriver string
	FontPath    string

	MoviesDir   string
	CatalogFile string
	SheetExt    string
	SheetSource string
	S3Bucket    string
	S3Prefix    string

	MaxSheets     int
	DecodeWorkers int
	DecodeTimeout time.Duration
	DecodeRetries int

	RemoteAddr   string
	SettingsFile string

	// MemoryLimitMB is the Go soft memory limit, 0 for none.
	MemoryLimitMB int

	// DebugFrames turns on per-frame and per-sheet logging.
	DebugFrames bool
}

// Defaults returns the configuration used when no environment overrides exist.
func Defaults() Config {
	return Config{
		WindowTitle:   "Cutscene Player",
		TargetFPS:     60,
		WindowWidth:   1200,
		MoviesDir:     "movies",
		CatalogFile:   "movies/catalog.json",
		SheetExt:      "png",
		SheetSource:   SourceLocal,
		MaxSheets:     256,
		DecodeWorkers: 1,
		DecodeTimeout: 10 * time.Second,
		DecodeRetries: 2,
		SettingsFile:  "settings.json",
	}
}

// Load reads the .env file (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment on top of Defaults.
// Malformed values are logged and ignored.
func FromEnv() Config {
	cfg := Defaults()

	cfg.WindowTitle = stringVar("GAME_TITLE", cfg.WindowTitle)
	cfg.TargetFPS = intVar("TARGET_FPS", cfg.TargetFPS, 1)
	cfg.WindowWidth = intVar("WINDOW_WIDTH", cfg.WindowWidth, 320)
	cfg.Fullscreen = boolVar("FULLSCREEN", cfg.Fullscreen)
	cfg.VideoDriver = stringVar("SDL_VIDEODRIVER", cfg.VideoDriver)
	cfg.FontPath = stringVar("FONT_PATH", cfg.FontPath)

	cfg.MoviesDir = stringVar("MOVIES_DIR", cfg.MoviesDir)
	cfg.CatalogFile = stringVar("CATALOG_FILE", cfg.CatalogFile)
	cfg.SheetExt = strings.TrimPrefix(strings.ToLower(stringVar("SHEET_EXT", cfg.SheetExt)), ".")
	switch cfg.SheetExt {
	case "png", "webp":
	default:
		log.Printf("Config: unsupported SHEET_EXT %q, using png", cfg.SheetExt)
		cfg.SheetExt = "png"
	}

	cfg.SheetSource = strings.ToLower(stringVar("SHEET_SOURCE", cfg.SheetSource))
	if cfg.SheetSource != SourceLocal && cfg.SheetSource != SourceS3 {
		log.Printf("Config: unknown SHEET_SOURCE %q, using %s", cfg.SheetSource, SourceLocal)
		cfg.SheetSource = SourceLocal
	}
	cfg.S3Bucket = stringVar("S3_BUCKET", cfg.S3Bucket)
	cfg.S3Prefix = strings.Trim(stringVar("S3_PREFIX", cfg.S3Prefix), "/")

	cfg.MaxSheets = intVar("MAX_SHEETS", cfg.MaxSheets, 1)
	cfg.DecodeWorkers = intVar("DECODE_WORKERS", cfg.DecodeWorkers, 1)
	cfg.DecodeRetries = intVar("DECODE_RETRIES", cfg.DecodeRetries, 0)
	cfg.DecodeTimeout = durationVar("DECODE_TIMEOUT", cfg.DecodeTimeout)

	cfg.RemoteAddr = stringVar("REMOTE_ADDR", cfg.RemoteAddr)
	cfg.SettingsFile = stringVar("SETTINGS_FILE", cfg.SettingsFile)
	cfg.MemoryLimitMB = intVar("MEMORY_LIMIT_MB", cfg.MemoryLimitMB, 0)
	cfg.DebugFrames = boolVar("DEBUG_FRAME_UPDATES", cfg.DebugFrames)

	return cfg
}

func stringVar(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}

func boolVar(name string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Config: invalid %s=%q, using %v", name, raw, fallback)
		return fallback
	}
	return b
}

func intVar(name string, fallback, min int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		log.Printf("Config: invalid %s=%q, using %d", name, raw, fallback)
		return fallback
	}
	return n
}

func durationVar(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Config: invalid %s=%q, using %s", name, raw, fallback)
		return fallback
	}
	return d
}
