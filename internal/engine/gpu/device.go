// Package gpu defines the narrow graphics-device surface the engine draws
// through. The production implementation wraps OpenGL 4.1 core; tests use
// gputest.Recorder.
package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Capability is a fixed-function pipeline switch.
type Capability int

const (
	DepthTest Capability = iota
	Blend
	CullFace
)

// DepthFunc selects the depth comparison.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
)

// Attribute describes one float vertex attribute sourced from a buffer.
// Divisor 0 advances per vertex, 1 per instance.
type Attribute struct {
	Location uint32
	Size     int32
	Stride   int32
	Offset   int
	Divisor  uint32
}

// Device is the set of GPU operations used by the engine.
// All calls must happen on the thread owning the graphics context.
type Device interface {
	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	CreateBuffer() uint32
	DeleteBuffer(buf uint32)
	// VertexData uploads static per-vertex floats into buf.
	VertexData(buf uint32, data []float32)
	// IndexData uploads static triangle indices into buf and attaches it
	// to the bound vertex array.
	IndexData(buf uint32, data []uint32)
	// AllocateInstances reserves room for count matrices in buf.
	AllocateInstances(buf uint32, count int)
	// InstanceData overwrites the start of buf with the given matrices.
	InstanceData(buf uint32, data []mgl32.Mat4)
	// VertexAttrib binds buf as the source of attribute a on the bound vertex array.
	VertexAttrib(buf uint32, a Attribute)

	CreateTexture2D(img *image.RGBA) uint32
	CreateCubemap(faces [6]*image.RGBA) uint32
	BindTexture2D(unit uint32, tex uint32)
	BindCubemap(unit uint32, tex uint32)
	DeleteTexture(tex uint32)

	UseProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	UniformMat4(loc int32, m mgl32.Mat4)
	UniformVec3(loc int32, v mgl32.Vec3)
	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)

	Enable(c Capability)
	Disable(c Capability)
	DepthMask(write bool)
	SetDepthFunc(f DepthFunc)

	DrawArrays(first, count int32)
	DrawElementsInstanced(indexCount, instances int32)
}

// Mat4Attributes returns the four vec4 attributes that carry one mat4 per
// instance, starting at location first.
func Mat4Attributes(first uint32) [4]Attribute {
	var attrs [4]Attribute
	for i := range attrs {
		attrs[i] = Attribute{
			Location: first + uint32(i),
			Size:     4,
			Stride:   16 * 4,
			Offset:   i * 4 * 4,
			Divisor:  1,
		}
	}
	return attrs
}
