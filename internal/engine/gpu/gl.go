package gpu

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GL implements Device over OpenGL 4.1 core.
// gl.Init must have been called on the current context (see renderer.New).
type GL struct {
	// Anisotropy is the max anisotropic filter applied to 2D textures.
	Anisotropy float32
}

// NewGL returns a Device backed by the current OpenGL context.
func NewGL() *GL {
	return &GL{Anisotropy: 8}
}

var capabilities = map[Capability]uint32{
	DepthTest: gl.DEPTH_TEST,
	Blend:     gl.BLEND,
	CullFace:  gl.CULL_FACE,
}

func (d *GL) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *GL) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *GL) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *GL) CreateBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (d *GL) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (d *GL) VertexData(buf uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
}

func (d *GL) IndexData(buf uint32, data []uint32) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf)
	if len(data) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
}

func (d *GL) AllocateInstances(buf uint32, count int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.BufferData(gl.ARRAY_BUFFER, count*int(unsafe.Sizeof(mgl32.Mat4{})), nil, gl.DYNAMIC_DRAW)
}

func (d *GL) InstanceData(buf uint32, data []mgl32.Mat4) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*int(unsafe.Sizeof(mgl32.Mat4{})), unsafe.Pointer(&data[0]))
}

func (d *GL) VertexAttrib(buf uint32, a Attribute) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, a.Stride, uintptr(a.Offset))
	gl.EnableVertexAttribArray(a.Location)
	gl.VertexAttribDivisor(a.Location, a.Divisor)
}

func (d *GL) CreateTexture2D(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	if d.Anisotropy > 0 {
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, d.Anisotropy)
	}
	return tex
}

func (d *GL) CreateCubemap(faces [6]*image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)
	for i, img := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	return tex
}

func (d *GL) BindTexture2D(unit uint32, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (d *GL) BindCubemap(unit uint32, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)
}

func (d *GL) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (d *GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GL) UniformMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *GL) UniformVec3(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

func (d *GL) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (d *GL) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (d *GL) Enable(c Capability) {
	gl.Enable(capabilities[c])
}

func (d *GL) Disable(c Capability) {
	gl.Disable(capabilities[c])
}

func (d *GL) DepthMask(write bool) {
	gl.DepthMask(write)
}

func (d *GL) SetDepthFunc(f DepthFunc) {
	switch f {
	case DepthLessEqual:
		gl.DepthFunc(gl.LEQUAL)
	default:
		gl.DepthFunc(gl.LESS)
	}
}

func (d *GL) DrawArrays(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (d *GL) DrawElementsInstanced(indexCount, instances int32) {
	gl.DrawElementsInstanced(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, nil, instances)
}

var _ Device = (*GL)(nil)
