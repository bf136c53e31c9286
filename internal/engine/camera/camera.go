// Package camera provides the first-person camera and the obstacle registry
// it collides against.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a set of requested movement directions for one frame.
type Movement uint8

const (
	Forward Movement = 1 << iota
	Backward
	Left
	Right
)

// Default camera settings.
const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	MaxPitch           = 89.0
)

// Camera is a first-person camera locked to a fixed eye height.
// Front, Right and Up are derived from Yaw and Pitch and stay orthonormal.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32 // degrees
	Pitch float32 // degrees, clamped to [-MaxPitch, MaxPitch]

	Speed       float32 // units per second, changed by gameplay
	Sensitivity float32 // degrees per pointer unit

	// Obstacles is consulted by KeyControl; fill it before the first move.
	Obstacles *Registry
}

// New creates a camera at position looking down -Z.
func New(position, worldUp mgl32.Vec3) *Camera {
	c := &Camera{
		Position:    position,
		WorldUp:     worldUp,
		Yaw:         DefaultYaw,
		Pitch:       DefaultPitch,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		Obstacles:   &Registry{},
	}
	c.updateVectors()
	return c
}

// KeyControl moves the camera along each requested direction by Speed*dt.
//
// Every direction is tested from the position the camera had when the call
// started, with the eye height kept, and is committed only if that candidate
// is free. The committed displacements are then summed; if the combined
// position collides, only the first free direction is applied. The vertical
// coordinate never changes.
func (c *Camera) KeyControl(move Movement, dt float32) {
	velocity := c.Speed * dt
	base := c.Position

	steps := [...]struct {
		dir  Movement
		axis mgl32.Vec3
	}{
		{Forward, c.Front.Mul(velocity)},
		{Backward, c.Front.Mul(-velocity)},
		{Left, c.Right.Mul(-velocity)},
		{Right, c.Right.Mul(velocity)},
	}

	var total, first mgl32.Vec3
	committed := 0
	for _, s := range steps {
		if move&s.dir == 0 {
			continue
		}
		if c.collides(flatten(base.Add(s.axis), base[1])) {
			continue
		}
		if committed == 0 {
			first = s.axis
		}
		total = total.Add(s.axis)
		committed++
	}

	next := flatten(base.Add(total), base[1])
	if committed > 1 && c.collides(next) {
		next = flatten(base.Add(first), base[1])
	}
	c.Position = next
}

func flatten(p mgl32.Vec3, y float32) mgl32.Vec3 {
	p[1] = y
	return p
}

func (c *Camera) collides(p mgl32.Vec3) bool {
	return c.Obstacles != nil && c.Obstacles.Collides(p)
}

// MouseControl turns the camera by pointer deltas scaled by Sensitivity.
// Positive dy looks up.
func (c *Camera) MouseControl(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	c.updateVectors()
}

func (c *Camera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))

	front := mgl32.Vec3{
		float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		float32(gomath.Sin(pitch)),
		float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// ViewMatrix returns the look-at view matrix for the current state.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Ground returns the camera position projected on the XZ plane.
func (c *Camera) Ground() mgl32.Vec2 {
	return mgl32.Vec2{c.Position[0], c.Position[2]}
}
