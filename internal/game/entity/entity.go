// Package entity implements the game's pickups and flying actors.
package entity

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind represents the type of pickup.
type Kind uint8

const (
	KindBag Kind = iota
	KindStar
)

func (k Kind) String() string {
	switch k {
	case KindBag:
		return "bag"
	case KindStar:
		return "star"
	default:
		return "unknown"
	}
}

// Pickup tuning per kind.
const (
	BagRadius  = 0.2
	StarRadius = 0.1

	BagScale  = 0.005
	StarScale = 0.2
	StarY     = 0.3
)

// BagOffset is the distance on XZ from a bag's translation to the visual
// centre of the bag mesh.
var BagOffset = mgl32.Vec2{-1.078, 0.048}

// Pickup is one collectible placed in the world.
type Pickup struct {
	Position  mgl32.Vec3 // world translation
	Transform mgl32.Mat4 // instance transform, updated by Spin
}

// Collection holds the live pickups of one kind.
// Records are tested against the player on the XZ plane only.
type Collection struct {
	Kind   Kind
	Radius float32
	Offset mgl32.Vec2

	items []Pickup
}

// NewCollection creates an empty collection with the tuning for kind.
func NewCollection(kind Kind) *Collection {
	c := &Collection{Kind: kind}
	switch kind {
	case KindBag:
		c.Radius = BagRadius
		c.Offset = BagOffset
	case KindStar:
		c.Radius = StarRadius
	}
	return c
}

// Add places a pickup at position with its initial instance transform.
func (c *Collection) Add(position mgl32.Vec3, transform mgl32.Mat4) {
	c.items = append(c.items, Pickup{Position: position, Transform: transform})
}

// Len returns the number of live pickups.
func (c *Collection) Len() int {
	return len(c.items)
}

// At returns the i-th live pickup.
func (c *Collection) At(i int) Pickup {
	return c.items[i]
}

// Center returns the XZ point a pickup is collected around.
func (c *Collection) Center(p Pickup) mgl32.Vec2 {
	return mgl32.Vec2{p.Position.X(), p.Position.Z()}.Add(c.Offset)
}

// Collect removes every pickup whose centre lies strictly within Radius of
// player and returns the removed records in insertion order. All
// records are tested before any is removed.
func (c *Collection) Collect(player mgl32.Vec2) []Pickup {
	var hits []int
	for i, p := range c.items {
		if c.Center(p).Sub(player).Len() < c.Radius {
			hits = append(hits, i)
		}
	}
	if len(hits) == 0 {
		return nil
	}

	removed := make([]Pickup, 0, len(hits))
	kept := c.items[:0]
	h := 0
	for i, p := range c.items {
		if h < len(hits) && hits[h] == i {
			removed = append(removed, p)
			h++
			continue
		}
		kept = append(kept, p)
	}
	clear(c.items[len(kept):])
	c.items = kept
	return removed
}

// Spin post-multiplies every transform by rot, rotating each pickup in its
// own model space.
func (c *Collection) Spin(rot mgl32.Mat4) {
	for i := range c.items {
		c.items[i].Transform = c.items[i].Transform.Mul4(rot)
	}
}

// Transforms appends the instance transforms of all live pickups to dst.
func (c *Collection) Transforms(dst []mgl32.Mat4) []mgl32.Mat4 {
	for _, p := range c.items {
		dst = append(dst, p.Transform)
	}
	return dst
}

// BagTransform places a bag mesh at position.
func BagTransform(position mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position.Elem()).Mul4(mgl32.Scale3D(BagScale, BagScale, BagScale))
}

// StarTransform places a star mesh at position, tilted so it stands upright.
func StarTransform(position mgl32.Vec3) mgl32.Mat4 {
	tilt := mgl32.HomogRotate3D(mgl32.DegToRad(90), mgl32.Vec3{0.5, 0, 1}.Normalize())
	return mgl32.Translate3D(position.Elem()).
		Mul4(mgl32.Scale3D(StarScale, StarScale, StarScale)).
		Mul4(tilt)
}

// Scatter returns n points with X and Z uniform in [-halfExtent, halfExtent]
// at height y.
func Scatter(rng *rand.Rand, n int, halfExtent, y float32) []mgl32.Vec3 {
	pts := make([]mgl32.Vec3, n)
	for i := range pts {
		pts[i] = mgl32.Vec3{
			(rng.Float32()*2 - 1) * halfExtent,
			y,
			(rng.Float32()*2 - 1) * halfExtent,
		}
	}
	return pts
}
