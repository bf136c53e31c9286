// Package hud draws screen-space text over the scene.
package hud

import (
	"image"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu"
)

// Text is a block of lines anchored to the top-left of the screen.
// The glyph texture is rebuilt only when the lines change.
type Text struct {
	// Margin is the distance in pixels from the left and top edges to the
	// first baseline.
	Margin float32
	Scale  float32
	Color  mgl32.Vec3

	face  font.Face
	lines []string

	dev     gpu.Device
	program uint32
	vao     uint32
	vbo     uint32
	tex     uint32
	size    image.Point

	projection, glyphs, color int32
}

// New creates an empty text block drawn with program.
func New(dev gpu.Device, program uint32) *Text {
	t := &Text{
		Margin:  25,
		Scale:   2,
		Color:   mgl32.Vec3{1, 1, 1},
		face:    basicfont.Face7x13,
		dev:     dev,
		program: program,
	}

	t.vao = dev.CreateVertexArray()
	dev.BindVertexArray(t.vao)
	t.vbo = dev.CreateBuffer()
	dev.VertexData(t.vbo, make([]float32, 6*4))
	dev.VertexAttrib(t.vbo, gpu.Attribute{Location: 0, Size: 2, Stride: 4 * 4})
	dev.VertexAttrib(t.vbo, gpu.Attribute{Location: 1, Size: 2, Stride: 4 * 4, Offset: 2 * 4})
	dev.BindVertexArray(0)

	t.projection = dev.UniformLocation(program, "projection")
	t.glyphs = dev.UniformLocation(program, "glyphs")
	t.color = dev.UniformLocation(program, "textColor")
	return t
}

// SetLines replaces the displayed text.
func (t *Text) SetLines(lines ...string) {
	if slices.Equal(lines, t.lines) && t.tex != 0 {
		return
	}
	t.lines = slices.Clone(lines)

	img := Rasterize(t.face, t.lines)
	if t.tex != 0 {
		t.dev.DeleteTexture(t.tex)
	}
	t.tex = t.dev.CreateTexture2D(img)
	t.size = img.Bounds().Size()
}

// Lines returns the text currently shown.
func (t *Text) Lines() []string {
	return t.lines
}

// Draw renders the text for a screen of the given size in pixels.
func (t *Text) Draw(screenW, screenH int) {
	if t.tex == 0 {
		return
	}

	ascent := float32(t.face.Metrics().Ascent.Ceil())
	w := float32(t.size.X) * t.Scale
	h := float32(t.size.Y) * t.Scale
	top := float32(screenH) - t.Margin + ascent*t.Scale

	t.dev.VertexData(t.vbo, quad(t.Margin, top-h, w, h))

	t.dev.Disable(gpu.DepthTest)
	t.dev.UseProgram(t.program)
	t.dev.UniformMat4(t.projection, mgl32.Ortho(0, float32(screenW), 0, float32(screenH), -1, 1))
	t.dev.UniformVec3(t.color, t.Color)
	t.dev.Uniform1i(t.glyphs, 0)
	t.dev.BindTexture2D(0, t.tex)

	t.dev.BindVertexArray(t.vao)
	t.dev.DrawArrays(0, 6)
	t.dev.BindVertexArray(0)
	t.dev.Enable(gpu.DepthTest)
}

// Release frees the GPU resources.
func (t *Text) Release() {
	if t.tex != 0 {
		t.dev.DeleteTexture(t.tex)
		t.tex = 0
	}
	t.dev.DeleteBuffer(t.vbo)
	t.dev.DeleteVertexArray(t.vao)
}

// quad returns two triangles of (x, y, u, v) covering the rectangle with
// bottom-left corner (x, y). Row 0 of the texture is the top edge.
func quad(x, y, w, h float32) []float32 {
	x1, y1 := x+w, y+h
	return []float32{
		x, y1, 0, 0,
		x, y, 0, 1,
		x1, y, 1, 1,

		x, y1, 0, 0,
		x1, y, 1, 1,
		x1, y1, 1, 0,
	}
}

// Rasterize draws lines in white onto a transparent image, one line per
// face height. Glyph coverage ends up in the alpha channel.
func Rasterize(face font.Face, lines []string) *image.RGBA {
	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()

	width := 1
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}
	height := max(1, (len(lines)-1)*lineHeight+ascent+descent)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{Dst: img, Src: image.White, Face: face}
	for i, l := range lines {
		d.Dot = fixed.P(0, ascent+i*lineHeight)
		d.DrawString(l)
	}
	return img
}
