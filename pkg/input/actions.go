package input

import "github.com/veandco/go-sdl2/sdl"

type Action int

const (
	ActionNone Action = iota
	ActionSelect      // Event.Slot holds the 0-based catalog position
	ActionToggleLast
	ActionStop
	ActionMute
	ActionVolumeUp
	ActionVolumeDown
	ActionMenuUp
	ActionMenuDown
	ActionMenuConfirm
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionToggleLast:
		return "toggle"
	case ActionStop:
		return "stop"
	case ActionMute:
		return "mute"
	case ActionVolumeUp:
		return "volume+"
	case ActionVolumeDown:
		return "volume-"
	case ActionMenuUp:
		return "menu-up"
	case ActionMenuDown:
		return "menu-down"
	case ActionMenuConfirm:
		return "menu-confirm"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

type Event struct {
	Action Action
	Slot   int
}

type Binding struct {
	Key   sdl.Scancode
	Event Event
}

// Bindings maps keys to actions. Digits 1..9 select the first nine videos.
var Bindings = func() []Binding {
	b := make([]Binding, 0, 20)
	for i := 0; i < 9; i++ {
		b = append(b, Binding{Key: sdl.SCANCODE_1 + sdl.Scancode(i), Event: Event{Action: ActionSelect, Slot: i}})
	}
	return append(b,
		Binding{Key: sdl.SCANCODE_P, Event: Event{Action: ActionToggleLast}},
		Binding{Key: sdl.SCANCODE_S, Event: Event{Action: ActionStop}},
		Binding{Key: sdl.SCANCODE_M, Event: Event{Action: ActionMute}},
		Binding{Key: sdl.SCANCODE_EQUALS, Event: Event{Action: ActionVolumeUp}},
		Binding{Key: sdl.SCANCODE_MINUS, Event: Event{Action: ActionVolumeDown}},
		Binding{Key: sdl.SCANCODE_UP, Event: Event{Action: ActionMenuUp}},
		Binding{Key: sdl.SCANCODE_DOWN, Event: Event{Action: ActionMenuDown}},
		Binding{Key: sdl.SCANCODE_RETURN, Event: Event{Action: ActionMenuConfirm}},
		Binding{Key: sdl.SCANCODE_ESCAPE, Event: Event{Action: ActionQuit}},
	)
}()
