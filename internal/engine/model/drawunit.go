package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/texture"
)

// Uniform names expected by the instanced shader.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformDiffuse    = "diffuseTexture"
	UniformHasTexture = "hasTexture"

	UniformDiffuseColor  = "diffuseColor"
	UniformSpecularColor = "specularColor"
	UniformShininess     = "surfaceShininess"
	UniformOpacity       = "opacity"
)

type uniformSet struct {
	model, view, projection, diffuse, hasTexture    int32
	diffuseColor, specularColor, shininess, opacity int32
}

// uniformCache remembers uniform locations per shader program.
type uniformCache map[uint32]uniformSet

func (c uniformCache) lookup(dev gpu.Device, program uint32) uniformSet {
	if u, ok := c[program]; ok {
		return u
	}
	u := uniformSet{
		model:      dev.UniformLocation(program, UniformModel),
		view:       dev.UniformLocation(program, UniformView),
		projection: dev.UniformLocation(program, UniformProjection),
		diffuse:    dev.UniformLocation(program, UniformDiffuse),
		hasTexture: dev.UniformLocation(program, UniformHasTexture),

		diffuseColor:  dev.UniformLocation(program, UniformDiffuseColor),
		specularColor: dev.UniformLocation(program, UniformSpecularColor),
		shininess:     dev.UniformLocation(program, UniformShininess),
		opacity:       dev.UniformLocation(program, UniformOpacity),
	}
	c[program] = u
	return u
}

// DrawUnit is one submesh resident on the GPU with a fixed-size instance
// buffer. Every draw re-uploads the whole transform list.
type DrawUnit struct {
	Name     string
	Material string
	// Texture is the diffuse map bound while drawing, or nil.
	Texture *texture.Texture
	Surface Surface

	dev         gpu.Device
	uniforms    uniformCache
	vao         uint32
	vbo         uint32
	ibo         uint32
	instanceVBO uint32
	indexCount  int32
	capacity    int
}

// NewDrawUnit uploads the submesh geometry and allocates room for capacity
// instance transforms.
func NewDrawUnit(dev gpu.Device, sm *Submesh, capacity int) (*DrawUnit, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("draw unit %s: negative capacity %d", sm.Name, capacity)
	}
	u := &DrawUnit{
		Name:       sm.Name,
		Material:   sm.Material,
		Surface:    DefaultSurface,
		dev:        dev,
		uniforms:   make(uniformCache),
		indexCount: int32(len(sm.Indices)),
		capacity:   capacity,
	}

	u.vao = dev.CreateVertexArray()
	dev.BindVertexArray(u.vao)

	u.vbo = dev.CreateBuffer()
	dev.VertexData(u.vbo, sm.Interleave())
	stride := int32(FloatsPerVertex * 4)
	dev.VertexAttrib(u.vbo, gpu.Attribute{Location: LocPosition, Size: 3, Stride: stride, Offset: 0})
	dev.VertexAttrib(u.vbo, gpu.Attribute{Location: LocTexCoord, Size: 2, Stride: stride, Offset: 3 * 4})
	dev.VertexAttrib(u.vbo, gpu.Attribute{Location: LocNormal, Size: 3, Stride: stride, Offset: 5 * 4})

	u.instanceVBO = dev.CreateBuffer()
	dev.AllocateInstances(u.instanceVBO, capacity)
	for _, a := range gpu.Mat4Attributes(LocInstance) {
		dev.VertexAttrib(u.instanceVBO, a)
	}

	u.ibo = dev.CreateBuffer()
	dev.IndexData(u.ibo, sm.Indices)

	dev.BindVertexArray(0)
	return u, nil
}

// Capacity returns the number of instances the unit can draw at once.
func (u *DrawUnit) Capacity() int {
	return u.capacity
}

// IndexCount returns the number of element indices drawn per instance.
func (u *DrawUnit) IndexCount() int {
	return int(u.indexCount)
}

// Draw renders one instance per transform. The final transform of an
// instance is base * transforms[i]; view and projection are shared.
// An empty list still issues a draw with zero instances.
func (u *DrawUnit) Draw(program uint32, base, view, projection mgl32.Mat4, transforms []mgl32.Mat4) error {
	if len(transforms) > u.capacity {
		return fmt.Errorf("draw unit %s: %d instances, capacity %d: %w", u.Name, len(transforms), u.capacity, ErrCapacityExceeded)
	}
	u.draw(program, base, view, projection, transforms)
	return nil
}

func (u *DrawUnit) draw(program uint32, base, view, projection mgl32.Mat4, transforms []mgl32.Mat4) {
	dev := u.dev
	loc := u.uniforms.lookup(dev, program)

	dev.UseProgram(program)
	dev.BindVertexArray(u.vao)

	dev.UniformMat4(loc.model, base)
	dev.UniformMat4(loc.view, view)
	dev.UniformMat4(loc.projection, projection)

	if u.Texture != nil && u.Texture.Bind(dev, 0) == nil {
		dev.Uniform1i(loc.diffuse, 0)
		dev.Uniform1i(loc.hasTexture, 1)
	} else {
		dev.BindTexture2D(0, 0)
		dev.Uniform1i(loc.hasTexture, 0)
	}

	specular := u.Surface.Specular
	if !u.Surface.Highlight {
		specular = mgl32.Vec3{}
	}
	dev.UniformVec3(loc.diffuseColor, u.Surface.Diffuse)
	dev.UniformVec3(loc.specularColor, specular)
	dev.Uniform1f(loc.shininess, u.Surface.Shininess)
	dev.Uniform1f(loc.opacity, u.Surface.Opacity)

	dev.InstanceData(u.instanceVBO, transforms)
	dev.DrawElementsInstanced(u.indexCount, int32(len(transforms)))

	dev.BindVertexArray(0)
}

// Release deletes the unit's GPU buffers. The texture is owned by the Model.
func (u *DrawUnit) Release() {
	for _, buf := range []uint32{u.vbo, u.ibo, u.instanceVBO} {
		if buf != 0 {
			u.dev.DeleteBuffer(buf)
		}
	}
	if u.vao != 0 {
		u.dev.DeleteVertexArray(u.vao)
	}
	u.vao, u.vbo, u.ibo, u.instanceVBO = 0, 0, 0, 0
}
