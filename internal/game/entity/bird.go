package entity

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Bird flight tuning.
const (
	BirdHeight    = 1.3
	BirdScale     = 0.05
	MaxWingAngle  = 90.0  // degrees
	WingFlapSpeed = 180.0 // degrees per second
)

// Bird flies in a straight line at constant velocity.
type Bird struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
}

// Model returns the body transform: the mesh is stood up and turned to
// face along its velocity.
func (b Bird) Model() mgl32.Mat4 {
	heading := float32(math.Atan2(float64(b.Velocity.Z()), float64(b.Velocity.X()))) - mgl32.DegToRad(90)
	return mgl32.Translate3D(b.Position.Elem()).
		Mul4(mgl32.Scale3D(BirdScale, BirdScale, BirdScale)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(90))).
		Mul4(mgl32.HomogRotate3DZ(heading))
}

// Flock is a set of birds sharing one wing beat.
type Flock struct {
	Birds []Bird

	// WingAngle swings between 0 and MaxWingAngle degrees.
	WingAngle float32
	closing   bool
}

// NewFlock creates n birds at the origin at BirdHeight, each heading in a
// random direction at unit speed.
func NewFlock(rng *rand.Rand, n int) *Flock {
	f := &Flock{Birds: make([]Bird, n)}
	for i := range f.Birds {
		yaw := float64(rng.Float32() * 2 * math.Pi)
		f.Birds[i] = Bird{
			Position: mgl32.Vec3{0, BirdHeight, 0},
			Velocity: mgl32.Vec3{float32(math.Cos(yaw)), 0, float32(math.Sin(yaw))},
		}
	}
	return f
}

// Update advances the wing beat and moves every bird by dt seconds.
func (f *Flock) Update(dt float32) {
	step := WingFlapSpeed * dt
	if f.closing {
		f.WingAngle = max(f.WingAngle-step, 0)
		if f.WingAngle <= 0 {
			f.closing = false
		}
	} else {
		f.WingAngle += step
		if f.WingAngle >= MaxWingAngle {
			f.WingAngle = MaxWingAngle
			f.closing = true
		}
	}

	for i := range f.Birds {
		b := &f.Birds[i]
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}
}

// Transforms appends the body, left wing and right wing instance
// transforms of every bird.
func (f *Flock) Transforms(body, left, right []mgl32.Mat4) ([]mgl32.Mat4, []mgl32.Mat4, []mgl32.Mat4) {
	w := mgl32.DegToRad(f.WingAngle)
	leftLocal := mgl32.HomogRotate3DY(w).Mul4(mgl32.Translate3D(0.5, 0, 0))
	rightLocal := mgl32.HomogRotate3DY(-w).Mul4(mgl32.Translate3D(-1, 0, 0))

	for _, b := range f.Birds {
		m := b.Model()
		body = append(body, m)
		left = append(left, m.Mul4(leftLocal))
		right = append(right, m.Mul4(rightLocal))
	}
	return body, left, right
}
