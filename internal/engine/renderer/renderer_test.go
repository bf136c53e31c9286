package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPerspective(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		aspect        float32
	}{
		{"default window", 1000, 800, 1.25},
		{"square", 512, 512, 1},
		{"minimized", 1000, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Perspective(45, tt.width, tt.height, 0.1, 100)
			want := mgl32.Perspective(mgl32.DegToRad(45), tt.aspect, 0.1, 100)
			if !got.ApproxEqual(want) {
				t.Errorf("Perspective(%d, %d) = %v, want %v", tt.width, tt.height, got, want)
			}
		})
	}
}

func TestProjectionFollowsResize(t *testing.T) {
	r := &Renderer{config: Config{Width: 1000, Height: 800, FOV: 45, Near: 0.1, Far: 100}}
	before := r.Projection()

	// Resize touches GL, so change the config directly.
	r.config.Width, r.config.Height = 800, 800
	after := r.Projection()

	if before.ApproxEqual(after) {
		t.Error("projection should change with the viewport aspect")
	}
	if w, h := r.Size(); w != 800 || h != 800 {
		t.Errorf("Size() = %d, %d, want 800, 800", w, h)
	}
}
