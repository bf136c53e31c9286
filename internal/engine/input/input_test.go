package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/camera"
)

func keys(held ...sdl.Scancode) []uint8 {
	state := make([]uint8, 512)
	for _, k := range held {
		state[k] = 1
	}
	return state
}

func TestMovementFromKeys(t *testing.T) {
	tests := []struct {
		name string
		held []sdl.Scancode
		want camera.Movement
	}{
		{"none", nil, 0},
		{"forward", []sdl.Scancode{sdl.SCANCODE_W}, camera.Forward},
		{"back left", []sdl.Scancode{sdl.SCANCODE_S, sdl.SCANCODE_A}, camera.Backward | camera.Left},
		{"all", []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_A, sdl.SCANCODE_S, sdl.SCANCODE_D},
			camera.Forward | camera.Backward | camera.Left | camera.Right},
		{"unrelated key", []sdl.Scancode{sdl.SCANCODE_SPACE}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MovementFromKeys(keys(tt.held...)))
		})
	}

	assert.Equal(t, camera.Movement(0), MovementFromKeys(nil), "short state arrays are safe")
}

func TestInputMovementUsesKeyState(t *testing.T) {
	in := New()
	in.keyState = func() []uint8 { return keys(sdl.SCANCODE_D) }
	assert.Equal(t, camera.Right, in.Movement())
}

func TestHandleEvents(t *testing.T) {
	in := New()
	in.reset()

	assert.False(t, in.handle(&sdl.MouseMotionEvent{XRel: 4, YRel: 3}))
	assert.False(t, in.handle(&sdl.MouseMotionEvent{XRel: -1, YRel: 2}))
	assert.False(t, in.handle(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}}))
	assert.False(t, in.handle(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}}))
	assert.False(t, in.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480}))

	dx, dy := in.MouseDelta()
	assert.Equal(t, float32(3), dx)
	assert.Equal(t, float32(-5), dy, "screen-down motion is negative pitch")

	assert.True(t, in.IsKeyPressed(sdl.SCANCODE_ESCAPE))
	assert.False(t, in.IsKeyPressed(sdl.SCANCODE_W), "key repeats are ignored")

	evs := in.Events()
	assert.Len(t, evs, 4)
	assert.Equal(t, Event{Type: EventWindowResize, Width: 640, Height: 480}, evs[3])

	assert.True(t, in.handle(&sdl.QuitEvent{}))

	in.reset()
	dx, dy = in.MouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.Empty(t, in.Events())
}
