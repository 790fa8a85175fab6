package playback

import "errors"

var (
	// ErrEmptyVideo is recorded when a selected video has no sheets on storage.
	ErrEmptyVideo = errors.New("playback: video has no sheets")
	// ErrUnknownVideo is returned by Select for IDs the catalog does not know.
	ErrUnknownVideo = errors.New("playback: unknown video")
)

// State is the playback session state.
type State int

const (
	Idle State = iota
	Loading
	Playing
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}
