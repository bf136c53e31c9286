package camera

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// CollisionMargin is added to every obstacle radius in collision tests.
const CollisionMargin = 0.01

// ErrRegistrySealed is returned when adding to a registry after Seal.
var ErrRegistrySealed = errors.New("camera: obstacle registry is sealed")

// Obstacle is a static sphere the camera may not enter.
type Obstacle struct {
	Position mgl32.Vec3
	Radius   float32
}

// Registry holds the obstacles of a scene. It is filled during setup and
// read-only once sealed; obstacles are never removed.
type Registry struct {
	obstacles []Obstacle
	sealed    bool
}

// Add appends an obstacle.
func (r *Registry) Add(o Obstacle) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	r.obstacles = append(r.obstacles, o)
	return nil
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Len returns the number of obstacles.
func (r *Registry) Len() int {
	return len(r.obstacles)
}

// All returns a copy of the obstacles in insertion order.
func (r *Registry) All() []Obstacle {
	return append([]Obstacle(nil), r.obstacles...)
}

// Collides reports whether p lies strictly inside any obstacle grown by
// CollisionMargin. The camera itself is a point. The first hit wins.
func (r *Registry) Collides(p mgl32.Vec3) bool {
	for _, o := range r.obstacles {
		if p.Sub(o.Position).Len() < o.Radius+CollisionMargin {
			return true
		}
	}
	return false
}
