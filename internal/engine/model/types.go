// Package model imports triangulated OBJ meshes and draws them as instanced
// GPU draw units.
package model

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/obj"
)

// Vertex is one face corner. Attributes the mesh does not provide are zero.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
}

// FloatsPerVertex is the interleaved vertex size: position, texcoord, normal.
const FloatsPerVertex = 8

// Vertex attribute locations shared with the instanced shader.
const (
	LocPosition = 0
	LocTexCoord = 1
	LocNormal   = 2
	LocInstance = 3 // mat4 spans locations 3..6
)

// Submesh is the geometry of one object/material pair of a mesh file.
// Material names the library material it is drawn with, or "" for none.
type Submesh struct {
	Name     string
	Material string
	Vertices []Vertex
	Indices  []uint32
}

// Surface is the material response of a draw unit.
type Surface struct {
	Diffuse   mgl32.Vec3 // Kd, the base color when no diffuse map is bound
	Specular  mgl32.Vec3 // Ks, tints highlights
	Shininess float32    // Ns; 0 keeps the program's shininess
	Opacity   float32    // d
	Highlight bool       // illum 2 and above
}

// DefaultSurface is used by units whose submesh has no declared material.
var DefaultSurface = Surface{
	Diffuse:   mgl32.Vec3{0.7, 0.7, 0.7},
	Specular:  mgl32.Vec3{1, 1, 1},
	Opacity:   1,
	Highlight: true,
}

// SurfaceOf converts a library material.
func SurfaceOf(m *obj.Material) Surface {
	return Surface{
		Diffuse:   m.Diffuse,
		Specular:  m.Specular,
		Shininess: m.Shininess,
		Opacity:   m.Opacity,
		Highlight: m.Illum >= 2,
	}
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// ImportOptions controls how index buffers are produced.
type ImportOptions struct {
	// SourceIndices uses each corner's raw position index as the element
	// index and rejects meshes where that index does not address an emitted
	// vertex with the same position. By default indices follow emission order.
	SourceIndices bool
}

var (
	// ErrNotTriangulated is returned for faces with other than 3 corners.
	ErrNotTriangulated = errors.New("model: mesh is not triangulated")
	// ErrIndexMismatch is returned in SourceIndices mode when a raw index
	// does not address the vertex emitted for that corner.
	ErrIndexMismatch = errors.New("model: source index does not match emitted vertex")
	// ErrCapacityExceeded is returned when more instances are drawn than the
	// instance buffer was allocated for.
	ErrCapacityExceeded = errors.New("model: instance capacity exceeded")
)
