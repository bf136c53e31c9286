// Package gputest provides an in-memory gpu.Device for tests.
package gputest

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu"
)

// Draw is one recorded instanced draw call.
type Draw struct {
	VAO        uint32
	Program    uint32
	Texture    uint32 // 2D texture bound on unit 0 at draw time
	IndexCount int32
	Instances  int32
}

// Recorder is a gpu.Device that records calls instead of rendering.
// Handles are allocated from one counter starting at 1.
type Recorder struct {
	Calls []string

	Vertices  map[uint32][]float32
	Indices   map[uint32][]uint32
	Capacity  map[uint32]int
	Instances map[uint32][]mgl32.Mat4
	Attribs   map[uint32][]gpu.Attribute // by vertex array
	Textures  map[uint32]image.Rectangle
	Uniforms  map[int32]any
	Draws     []Draw
	Arrays    int // DrawArrays calls

	next     uint32
	vao      uint32
	program  uint32
	bound    map[uint32]uint32 // texture unit -> texture
	names    map[string]int32
	released map[uint32]bool
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		Vertices:  make(map[uint32][]float32),
		Indices:   make(map[uint32][]uint32),
		Capacity:  make(map[uint32]int),
		Instances: make(map[uint32][]mgl32.Mat4),
		Attribs:   make(map[uint32][]gpu.Attribute),
		Textures:  make(map[uint32]image.Rectangle),
		Uniforms:  make(map[int32]any),
		bound:     make(map[uint32]uint32),
		names:     make(map[string]int32),
		released:  make(map[uint32]bool),
	}
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

// Released reports whether the handle was deleted.
func (r *Recorder) Released(h uint32) bool {
	return r.released[h]
}

// UniformLoc returns the location handed out for a uniform name, or -1.
func (r *Recorder) UniformLoc(program uint32, name string) int32 {
	if loc, ok := r.names[fmt.Sprintf("%d/%s", program, name)]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) CreateVertexArray() uint32 {
	h := r.handle()
	r.record("CreateVertexArray %d", h)
	return h
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.vao = vao
	r.record("BindVertexArray %d", vao)
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.released[vao] = true
	r.record("DeleteVertexArray %d", vao)
}

func (r *Recorder) CreateBuffer() uint32 {
	h := r.handle()
	r.record("CreateBuffer %d", h)
	return h
}

func (r *Recorder) DeleteBuffer(buf uint32) {
	r.released[buf] = true
	r.record("DeleteBuffer %d", buf)
}

func (r *Recorder) VertexData(buf uint32, data []float32) {
	r.Vertices[buf] = append([]float32(nil), data...)
	r.record("VertexData %d %d", buf, len(data))
}

func (r *Recorder) IndexData(buf uint32, data []uint32) {
	r.Indices[buf] = append([]uint32(nil), data...)
	r.record("IndexData %d %d", buf, len(data))
}

func (r *Recorder) AllocateInstances(buf uint32, count int) {
	r.Capacity[buf] = count
	r.record("AllocateInstances %d %d", buf, count)
}

func (r *Recorder) InstanceData(buf uint32, data []mgl32.Mat4) {
	if len(data) > r.Capacity[buf] {
		panic(fmt.Sprintf("gputest: %d instances written to buffer %d of capacity %d", len(data), buf, r.Capacity[buf]))
	}
	r.Instances[buf] = append([]mgl32.Mat4(nil), data...)
	r.record("InstanceData %d %d", buf, len(data))
}

func (r *Recorder) VertexAttrib(buf uint32, a gpu.Attribute) {
	r.Attribs[r.vao] = append(r.Attribs[r.vao], a)
	r.record("VertexAttrib %d loc=%d divisor=%d", buf, a.Location, a.Divisor)
}

func (r *Recorder) CreateTexture2D(img *image.RGBA) uint32 {
	h := r.handle()
	r.Textures[h] = img.Bounds()
	r.record("CreateTexture2D %d", h)
	return h
}

func (r *Recorder) CreateCubemap(faces [6]*image.RGBA) uint32 {
	h := r.handle()
	r.Textures[h] = faces[0].Bounds()
	r.record("CreateCubemap %d", h)
	return h
}

func (r *Recorder) BindTexture2D(unit uint32, tex uint32) {
	r.bound[unit] = tex
	r.record("BindTexture2D %d %d", unit, tex)
}

func (r *Recorder) BindCubemap(unit uint32, tex uint32) {
	r.bound[unit] = tex
	r.record("BindCubemap %d %d", unit, tex)
}

func (r *Recorder) DeleteTexture(tex uint32) {
	r.released[tex] = true
	r.record("DeleteTexture %d", tex)
}

func (r *Recorder) UseProgram(program uint32) {
	r.program = program
	r.record("UseProgram %d", program)
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	key := fmt.Sprintf("%d/%s", program, name)
	loc, ok := r.names[key]
	if !ok {
		loc = int32(len(r.names))
		r.names[key] = loc
	}
	r.record("UniformLocation %s", key)
	return loc
}

func (r *Recorder) UniformMat4(loc int32, m mgl32.Mat4) {
	r.Uniforms[loc] = m
}

func (r *Recorder) UniformVec3(loc int32, v mgl32.Vec3) {
	r.Uniforms[loc] = v
}

func (r *Recorder) Uniform1i(loc int32, v int32) {
	r.Uniforms[loc] = v
}

func (r *Recorder) Uniform1f(loc int32, v float32) {
	r.Uniforms[loc] = v
}

func (r *Recorder) Enable(c gpu.Capability) {
	r.record("Enable %d", c)
}

func (r *Recorder) Disable(c gpu.Capability) {
	r.record("Disable %d", c)
}

func (r *Recorder) DepthMask(write bool) {
	r.record("DepthMask %t", write)
}

func (r *Recorder) SetDepthFunc(f gpu.DepthFunc) {
	r.record("SetDepthFunc %d", f)
}

func (r *Recorder) DrawArrays(first, count int32) {
	r.Arrays++
	r.record("DrawArrays %d %d", first, count)
}

func (r *Recorder) DrawElementsInstanced(indexCount, instances int32) {
	r.Draws = append(r.Draws, Draw{
		VAO:        r.vao,
		Program:    r.program,
		Texture:    r.bound[0],
		IndexCount: indexCount,
		Instances:  instances,
	})
	r.record("DrawElementsInstanced %d %d", indexCount, instances)
}

var _ gpu.Device = (*Recorder)(nil)
