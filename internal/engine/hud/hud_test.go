package hud

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu/gputest"
)

func coverage(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				n++
			}
		}
	}
	return n
}

func TestRasterize(t *testing.T) {
	img := Rasterize(basicfont.Face7x13, []string{"Score: 3/10", "Time: 42"})

	// 7px advance, 13px lines
	assert.Equal(t, image.Rect(0, 0, 7*len("Score: 3/10"), 26), img.Bounds())
	assert.Positive(t, coverage(img, image.Rect(0, 0, img.Bounds().Dx(), 13)))
	assert.Positive(t, coverage(img, image.Rect(0, 13, img.Bounds().Dx(), 26)))

	// "Time: 42" is shorter than the first line so the tail of row two is empty.
	assert.Zero(t, coverage(img, image.Rect(7*len("Time: 42"), 13, img.Bounds().Dx(), 26)))
}

func TestRasterizeEmpty(t *testing.T) {
	img := Rasterize(basicfont.Face7x13, nil)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Zero(t, coverage(img, img.Bounds()))
}

func TestSetLinesReuploadsOnChange(t *testing.T) {
	dev := gputest.New()
	txt := New(dev, 3)

	txt.SetLines("Score: 0/10", "Time: 60")
	first := txt.tex
	require.NotZero(t, first)

	txt.SetLines("Score: 0/10", "Time: 60")
	assert.Equal(t, first, txt.tex, "unchanged text keeps its texture")

	txt.SetLines("Score: 1/10", "Time: 59")
	assert.NotEqual(t, first, txt.tex)
	assert.True(t, dev.Released(first))
	assert.Equal(t, []string{"Score: 1/10", "Time: 59"}, txt.Lines())
}

func TestDraw(t *testing.T) {
	dev := gputest.New()
	txt := New(dev, 3)

	txt.Draw(1000, 800)
	assert.Zero(t, dev.Arrays, "nothing to draw before SetLines")

	txt.SetLines("Score: 2/10")
	txt.Draw(1000, 800)
	assert.Equal(t, 1, dev.Arrays)

	verts := dev.Vertices[txt.vbo]
	require.Len(t, verts, 24)
	// Top-left corner: left margin, first baseline 25px below the top edge.
	assert.Equal(t, float32(25), verts[0])
	assert.Equal(t, float32(800-25+11*2), verts[1])

	proj := dev.Uniforms[dev.UniformLoc(3, "projection")].(mgl32.Mat4)
	assert.True(t, proj.ApproxEqual(mgl32.Ortho(0, 1000, 0, 800, -1, 1)))
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, dev.Uniforms[dev.UniformLoc(3, "textColor")])

	txt.Release()
	assert.True(t, dev.Released(txt.vao))
}

func TestQuadUVs(t *testing.T) {
	q := quad(10, 20, 30, 40)
	require.Len(t, q, 24)
	for i := 0; i < 6; i++ {
		x, y, u, v := q[i*4], q[i*4+1], q[i*4+2], q[i*4+3]
		assert.Equal(t, x == 40, u == 1, "u follows x")
		assert.Equal(t, y == 20, v == 1, "v=1 at the bottom edge")
	}
}
