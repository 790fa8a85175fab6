package root

import (
	"fmt"
	"log"

	"cutscene-player/pkg/config"
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
	"github.com/veandco/go-sdl2/ttf"
)

// NewRootScreen creates and initializes the root screen
func NewRootScreen(window *sdl.Window, renderer *sdl.Renderer, cfg config.Config) (*RootScreen, error) {
	// Load settings first
	userSettings := settings.Load(cfg.SettingsFile)

	player, err := cutscene.NewCutsceneScreen(cfg, userSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to create cutscene screen: %w", err)
	}

	rg := &RootScreen{
		cutscene:       player,
		window:         window,
		renderer:       renderer,
		settings:       userSettings,
		settingsFile:   cfg.SettingsFile,
		preferred:      sharedTypes.NoVideo,
		lastState:      playback.Idle,
		progressWidget: progress.NewWidget(),
		keyTracker:     input.NewKeyPressTracker(),
		mouseTracker:   input.NewMousePressTracker(),
	}

	// Initialize UI components
	fonts, err := ui.LoadFonts(cfg.FontPath)
	if err != nil {
		log.Printf("Warning: Failed to initialize fonts, menus will have no text: %v", err)
	}
	rg.fonts = fonts

	videos := player.Catalog().Videos()
	rg.videoList = videoList.NewWidget(videos)
	if id, ok := player.Catalog().Find(userSettings.LastVideo); ok {
		rg.preferred = id
		rg.videoList.Highlight(id)
	}

	// Configure the player with SDL2 renderer
	if err := player.SetRenderer(renderer); err != nil {
		log.Printf("Warning: Failed to set renderer for cutscene player: %v", err)
	}

	if cfg.RemoteAddr != "" {
		rg.startRemote(cfg.RemoteAddr, videos)
	}

	return rg, nil
}

// startRemote brings up the phone remote. Failures only disable the remote.
func (rg *RootScreen) startRemote(addr string, videos []sharedTypes.VideoDescriptor) {
	server := remote.NewServer(addr, videos)
	if err := server.Start(); err != nil {
		log.Printf("Warning: remote control disabled: %v", err)
		return
	}
	rg.remote = server

	qrPNG, err := server.QRCodePNG()
	if err != nil {
		log.Printf("Warning: no QR code for remote: %v", err)
		return
	}
	widget, err := remoteQR.NewWidget(rg.renderer, qrPNG, server.URL())
	if err != nil {
		log.Printf("Warning: failed to create remote QR widget: %v", err)
		return
	}
	rg.remoteQRWidget = widget
}

// Update handles SDL2 input and remote commands, then advances playback
func (rg *RootScreen) Update() error {
	// Get current keyboard state
	rg.keyState = sdl.GetKeyboardState()
	// Get current mouse state
	rg.mouseX, rg.mouseY, rg.mouseButtons = sdl.GetMouseState()

	for _, ev := range rg.keyTracker.Poll(rg.keyState) {
		if ev.Action == input.ActionQuit {
			return ErrQuit
		}
		rg.handleAction(ev)
	}

	if rg.mouseTracker.IsPressed(rg.mouseButtons, sdl.ButtonLMask()) && rg.menuVisible() {
		if id, ok := rg.videoList.HitTest(rg.mouseX, rg.mouseY); ok {
			rg.selectVideo(id)
		}
	}

	rg.drainRemote()

	if err := rg.cutscene.Update(); err != nil {
		return err
	}

	status := rg.cutscene.Status()
	if state := rg.cutscene.State(); state != rg.lastState {
		if state == playback.Stopped {
			if err := rg.cutscene.Err(); err != nil {
				log.Printf("RootScreen: playback stopped | err=%v", err)
			}
		}
		rg.lastState = state
		rg.syncPlaying(state, status.Video)
	}

	if rg.remote != nil {
		rg.remote.Publish(status)
	}
	return nil
}

// syncPlaying marks the active video in the list
func (rg *RootScreen) syncPlaying(state playback.State, name string) {
	if state != playback.Loading && state != playback.Playing {
		rg.videoList.SetPlaying(sharedTypes.NoVideo)
		return
	}
	if id, ok := rg.cutscene.Catalog().Find(name); ok {
		rg.videoList.SetPlaying(id)
	}
}

// handleAction applies one key action
func (rg *RootScreen) handleAction(ev input.Event) {
	switch ev.Action {
	case input.ActionSelect:
		videos := rg.cutscene.Catalog().Videos()
		if ev.Slot < len(videos) {
			rg.selectVideo(videos[ev.Slot].ID)
		}
	case input.ActionToggleLast:
		rg.toggleLast()
	case input.ActionStop:
		rg.cutscene.Stop()
	case input.ActionMute:
		rg.settings.Muted = !rg.settings.Muted
		rg.cutscene.SetMuted(rg.settings.Muted)
		rg.saveSettings()
	case input.ActionVolumeUp:
		rg.adjustVolume(volumeStep)
	case input.ActionVolumeDown:
		rg.adjustVolume(-volumeStep)
	case input.ActionMenuUp:
		if rg.menuVisible() {
			rg.videoList.MoveSelection(-1)
		}
	case input.ActionMenuDown:
		if rg.menuVisible() {
			rg.videoList.MoveSelection(1)
		}
	case input.ActionMenuConfirm:
		if !rg.menuVisible() {
			return
		}
		if id, ok := rg.videoList.Selected(); ok {
			rg.selectVideo(id)
		}
	}
}

// drainRemote applies queued phone commands without blocking
func (rg *RootScreen) drainRemote() {
	if rg.remote == nil {
		return
	}
	for {
		select {
		case cmd := <-rg.remote.Commands():
			switch cmd.Kind {
			case remote.CommandSelect:
				log.Printf("RootScreen: remote select | video=%s", cmd.Name)
				rg.selectVideo(cmd.Video)
			case remote.CommandStop:
				log.Printf("RootScreen: remote stop")
				rg.cutscene.Stop()
			}
		default:
			return
		}
	}
}

func (rg *RootScreen) selectVideo(id sharedTypes.VideoID) {
	if err := rg.cutscene.Select(id); err != nil {
		log.Printf("RootScreen: select failed | video=%d | err=%v", id, err)
		return
	}

	rg.videoList.Highlight(id)
	rg.syncPlaying(rg.cutscene.State(), rg.cutscene.Status().Video)

	if desc, ok := rg.cutscene.Catalog().Lookup(id); ok && rg.settings.LastVideo != desc.Name {
		rg.settings.LastVideo = desc.Name
		rg.saveSettings()
	}
	rg.preferred = id
}

// toggleLast replays the previous selection. Before anything was played
// this session, the video remembered in settings is used.
func (rg *RootScreen) toggleLast() {
	if rg.cutscene.State() == playback.Idle && rg.preferred != sharedTypes.NoVideo {
		rg.selectVideo(rg.preferred)
		return
	}
	if err := rg.cutscene.ToggleLast(); err != nil {
		log.Printf("RootScreen: toggle failed: %v", err)
	}
	rg.syncPlaying(rg.cutscene.State(), rg.cutscene.Status().Video)
}

func (rg *RootScreen) adjustVolume(delta float64) {
	volume := settings.ClampVolume(rg.settings.Volume + delta)
	if volume == rg.settings.Volume {
		return
	}
	rg.settings.Volume = volume
	rg.cutscene.SetVolume(volume)
	rg.saveSettings()
	log.Printf("RootScreen: volume=%.1f", volume)
}

func (rg *RootScreen) saveSettings() {
	if err := settings.Save(rg.settingsFile, rg.settings); err != nil {
		log.Printf("Warning: failed to save settings: %v", err)
	}
}

// menuVisible reports whether the video list is on screen
func (rg *RootScreen) menuVisible() bool {
	state := rg.cutscene.State()
	return state == playback.Idle || state == playback.Stopped
}

// Draw renders the complete frame using SDL2
func (rg *RootScreen) Draw() error {
	// Get screen dimensions
	w, h := rg.window.GetSize()

	// Clear screen with black background
	rg.renderer.SetDrawColor(0, 0, 0, 255)
	rg.renderer.Clear()

	// Draw the cutscene (main content)
	if err := rg.cutscene.Draw(rg.renderer, w, h); err != nil {
		return err
	}

	switch rg.cutscene.State() {
	case playback.Loading:
		var font *ttf.Font
		if rg.fonts != nil {
			font = rg.fonts.Medium
		}
		if err := rg.progressWidget.Draw(rg.renderer, w, h, rg.cutscene.Progress(), font); err != nil {
			log.Printf("Error rendering progress: %v", err)
		}
	case playback.Idle, playback.Stopped:
		if err := rg.drawMenu(w, h); err != nil {
			return err
		}
	}

	// Present the complete frame
	rg.renderer.Present()
	return nil
}

// drawMenu renders the video list over a dimmed background
func (rg *RootScreen) drawMenu(screenWidth, screenHeight int32) error {
	if rg.fonts == nil {
		return nil
	}

	// Draw dark background overlay
	rg.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	rg.renderer.SetDrawColor(15, 23, 42, 220)
	rg.renderer.FillRect(&sdl.Rect{X: 0, Y: 0, W: screenWidth, H: screenHeight})

	menuWidth := screenWidth / 2
	menuHeight := int32(float64(screenHeight) * 0.8)
	menuX := int32(60)
	menuY := (screenHeight - menuHeight) / 2

	rg.renderer.SetDrawColor(30, 41, 59, 255)
	rg.renderer.FillRect(&sdl.Rect{X: menuX, Y: menuY, W: menuWidth, H: menuHeight})

	if err := rg.videoList.Draw(rg.renderer, menuX, menuY, menuWidth, menuHeight, rg.fonts.Large, rg.fonts.Medium, rg.fonts.Small); err != nil {
		return err
	}

	if err := rg.cutscene.Err(); err != nil && rg.fonts.Small != nil {
		errColor := sdl.Color{R: 248, G: 113, B: 113, A: 255}
		msg := ui.FitText(err.Error(), menuWidth-80, ui.Measure(rg.fonts.Small))
		if _, err := ui.RenderText(rg.renderer, msg, menuX+40, menuY+menuHeight-70, errColor, rg.fonts.Small); err != nil {
			return err
		}
	}

	if err := rg.drawNavigationHints(menuX, menuY, menuHeight); err != nil {
		return err
	}

	if rg.remoteQRWidget != nil {
		if err := rg.remoteQRWidget.Render(rg.renderer, screenWidth, screenHeight, rg.fonts); err != nil {
			log.Printf("Error rendering remote QR widget: %v", err)
		}
	}
	return nil
}

// drawNavigationHints renders helpful navigation hints
func (rg *RootScreen) drawNavigationHints(menuX, menuY, menuHeight int32) error {
	if rg.fonts.Small == nil {
		return nil
	}

	hintColor := sdl.Color{R: 156, G: 163, B: 175, A: 255}
	hintY := menuY + menuHeight - 30

	_, err := ui.RenderText(rg.renderer, "1-9 Play | Up/Down Navigate | Enter Select | +/- Volume | ESC Quit", menuX+40, hintY, hintColor, rg.fonts.Small)
	return err
}

// Close cleans up resources
func (rg *RootScreen) Close() {
	rg.saveSettings()

	if rg.remote != nil {
		if err := rg.remote.Stop(); err != nil {
			log.Printf("Error stopping remote server: %v", err)
		}
	}

	if rg.remoteQRWidget != nil {
		rg.remoteQRWidget.Destroy()
	}

	rg.cutscene.Close()

	// Close fonts
	if rg.fonts != nil {
		rg.fonts.Close()
	}
}
