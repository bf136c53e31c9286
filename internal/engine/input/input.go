// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/camera"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DX     int
	DY     int
}

// movementKeys maps held keys to camera directions.
var movementKeys = []struct {
	key  sdl.Scancode
	move camera.Movement
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
}

// Input handles all input processing.
type Input struct {
	events []Event

	// Relative mouse motion accumulated since the last Update.
	mouseDX, mouseDY int32

	keyState func() []uint8
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:   make([]Event, 0, 16),
		keyState: sdl.GetKeyboardState,
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.reset()

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			quit = true
		}
	}
	return quit
}

func (i *Input) reset() {
	i.events = i.events[:0]
	i.mouseDX, i.mouseDY = 0, 0
}

// handle records one SDL event and reports whether it asks to quit.
func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return false
		}
		if e.Type == sdl.KEYDOWN {
			i.events = append(i.events, Event{
				Type: EventKeyDown,
				Key:  e.Keysym.Scancode,
			})
		} else if e.Type == sdl.KEYUP {
			i.events = append(i.events, Event{
				Type: EventKeyUp,
				Key:  e.Keysym.Scancode,
			})
		}

	case *sdl.MouseMotionEvent:
		i.mouseDX += e.XRel
		i.mouseDY += e.YRel
		i.events = append(i.events, Event{
			Type: EventMouseMove,
			DX:   int(e.XRel),
			DY:   int(e.YRel),
		})
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Movement returns the directions whose keys are currently held.
func (i *Input) Movement() camera.Movement {
	return MovementFromKeys(i.keyState())
}

// MovementFromKeys maps an SDL keyboard state array to camera directions.
func MovementFromKeys(keys []uint8) camera.Movement {
	var m camera.Movement
	for _, mk := range movementKeys {
		if int(mk.key) < len(keys) && keys[mk.key] != 0 {
			m |= mk.move
		}
	}
	return m
}

// MouseDelta returns the motion since the last Update with Y pointing up.
func (i *Input) MouseDelta() (dx, dy float32) {
	return float32(i.mouseDX), float32(-i.mouseDY)
}
