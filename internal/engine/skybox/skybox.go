// Package skybox draws a cube-mapped sky behind the scene.
package skybox

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/texture"
)

// Loader reads asset bytes by path.
type Loader interface {
	ReadFile(name string) ([]byte, error)
}

// cube corners; the sky is drawn from inside so winding is irrelevant
var vertices = []float32{
	-1, 1, -1,
	-1, -1, -1,
	1, 1, -1,
	1, -1, -1,
	-1, 1, 1,
	1, 1, 1,
	-1, -1, 1,
	1, -1, 1,
}

var indices = []uint32{
	0, 1, 2, 2, 1, 3, // front
	2, 3, 5, 5, 3, 7, // right
	5, 7, 4, 4, 7, 6, // back
	4, 6, 0, 0, 6, 1, // left
	4, 0, 5, 5, 0, 2, // top
	1, 6, 3, 3, 6, 7, // bottom
}

// Skybox is a cube map and the cube it is sampled on.
type Skybox struct {
	dev     gpu.Device
	vao     uint32
	vbo     uint32
	ibo     uint32
	cubemap uint32

	program             uint32
	view, proj, sampler int32
}

// Load decodes six faces in +X, -X, +Y, -Y, +Z, -Z order and uploads them.
func Load(dev gpu.Device, program uint32, loader Loader, faces []string) (*Skybox, error) {
	if len(faces) != 6 {
		return nil, fmt.Errorf("skybox: need 6 faces, got %d", len(faces))
	}
	var imgs [6]*image.RGBA
	for i, name := range faces {
		data, err := loader.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("skybox face %d: %w", i, err)
		}
		tex, err := texture.Decode(name, data)
		if err != nil {
			return nil, fmt.Errorf("skybox face %d: %w", i, err)
		}
		imgs[i] = tex.Pixels
	}
	return New(dev, program, imgs)
}

// New uploads the faces as a cube map. Faces must be square and equally sized.
func New(dev gpu.Device, program uint32, faces [6]*image.RGBA) (*Skybox, error) {
	size := faces[0].Bounds().Size()
	if size.X != size.Y || size.X == 0 {
		return nil, fmt.Errorf("skybox: face 0 is %dx%d, want a non-empty square", size.X, size.Y)
	}
	for i, f := range faces[1:] {
		if f.Bounds().Size() != size {
			return nil, fmt.Errorf("skybox: face %d is %v, want %v", i+1, f.Bounds().Size(), size)
		}
	}

	s := &Skybox{dev: dev, program: program}
	s.cubemap = dev.CreateCubemap(faces)

	s.vao = dev.CreateVertexArray()
	dev.BindVertexArray(s.vao)
	s.vbo = dev.CreateBuffer()
	dev.VertexData(s.vbo, vertices)
	dev.VertexAttrib(s.vbo, gpu.Attribute{Location: 0, Size: 3, Stride: 3 * 4})
	s.ibo = dev.CreateBuffer()
	dev.IndexData(s.ibo, indices)
	dev.BindVertexArray(0)

	s.view = dev.UniformLocation(program, "view")
	s.proj = dev.UniformLocation(program, "projection")
	s.sampler = dev.UniformLocation(program, "skybox")
	return s, nil
}

// Draw renders the sky with the translation stripped from view. Depth
// testing switches to LEQUAL for the draw and back to LESS afterwards.
func (s *Skybox) Draw(view, projection mgl32.Mat4) {
	s.dev.SetDepthFunc(gpu.DepthLessEqual)
	s.dev.UseProgram(s.program)
	s.dev.UniformMat4(s.view, view.Mat3().Mat4())
	s.dev.UniformMat4(s.proj, projection)
	s.dev.Uniform1i(s.sampler, 0)
	s.dev.BindCubemap(0, s.cubemap)

	s.dev.BindVertexArray(s.vao)
	s.dev.DrawElementsInstanced(int32(len(indices)), 1)
	s.dev.BindVertexArray(0)
	s.dev.BindCubemap(0, 0)
	s.dev.SetDepthFunc(gpu.DepthLess)
}

// Release frees the GPU resources.
func (s *Skybox) Release() {
	s.dev.DeleteTexture(s.cubemap)
	s.dev.DeleteBuffer(s.ibo)
	s.dev.DeleteBuffer(s.vbo)
	s.dev.DeleteVertexArray(s.vao)
}
