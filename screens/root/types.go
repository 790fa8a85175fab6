package root

import (
	"errors"

	"cutscene-player/pkg/input"
	"cutscene-player/pkg/playback"
	"cutscene-player/pkg/remote"
	"cutscene-player/pkg/settings"
	"cutscene-player/pkg/sharedTypes"
	"cutscene-player/screens/cutscene"
	"cutscene-player/ui"
	"cutscene-player/widgets/progress"
	"cutscene-player/widgets/remoteQR"
	"cutscene-player/widgets/videoList"

	"github.com/veandco/go-sdl2/sdl"
)

// ErrQuit is returned by Update once the user asked to leave.
var ErrQuit = errors.New("quit requested")

const volumeStep = 0.5

// RootScreen owns the cutscene player and everything drawn around it
type RootScreen struct {
	cutscene *cutscene.CutsceneScreen

	// SDL2 rendering
	window   *sdl.Window
	renderer *sdl.Renderer

	// UI components
	fonts          *ui.Fonts
	videoList      *videoList.Widget
	progressWidget *progress.Widget

	// Phone remote, nil when REMOTE_ADDR is unset
	remote         *remote.Server
	remoteQRWidget *remoteQR.Widget

	// Persisted user preferences
	settings     settings.Settings
	settingsFile string
	preferred    sharedTypes.VideoID

	lastState playback.State

	// Input tracking
	keyState []uint8
	// Mouse button state bitmask from sdl.GetMouseState
	mouseButtons uint32
	mouseX       int32
	mouseY       int32

	// Key press state tracking to avoid duplicate calls
	keyTracker input.KeyPressTracker
	// Mouse press state tracking to avoid duplicate calls
	mouseTracker input.MousePressTracker
}
