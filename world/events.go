package world

import "github.com/google/uuid"

// EventType enumerates the signals a host can raise.
type EventType uint8

const (
	// EventFullscreen and EventWindowed resize the camera to Width x Height.
	EventFullscreen EventType = iota
	EventWindowed
	// EventBeginSimulation sets the one-way simulation latch.
	EventBeginSimulation
	// EventSelect is a click at world coordinates (X, Y).
	EventSelect
	// EventOption applies option Index of the selected object's panel.
	EventOption
	// EventUndo reverts option Index of the selected object's panel.
	EventUndo
)

func (t EventType) String() string {
	switch t {
	case EventFullscreen:
		return "Fullscreen"
	case EventWindowed:
		return "Windowed"
	case EventBeginSimulation:
		return "BeginSimulation"
	case EventSelect:
		return "Select"
	case EventOption:
		return "Option"
	case EventUndo:
		return "Undo"
	}
	return "Unknown"
}

// Event is an input notification delivered through World.HandleEvent.
type Event struct {
	Type          EventType
	X, Y          float64
	Width, Height float64
	Index         int
}

// TransitionEvent describes one mosquito crossing a door or window.
type TransitionEvent struct {
	Run      uuid.UUID
	Pass     int
	Mosquito int
	House    string
	Via      string
	// Indoor is the mosquito's state after the transition.
	Indoor bool
}
