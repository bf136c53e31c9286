// Package renderer owns per-frame OpenGL state: clearing, viewport and projection.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
}

// Renderer handles frame setup shared by every draw.
type Renderer struct {
	config Config
	dev    *gpu.GL
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	r.dev = gpu.NewGL()

	r.dev.Enable(gpu.DepthTest)
	r.dev.SetDepthFunc(gpu.DepthLess)
	r.dev.Enable(gpu.Blend)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Device returns the GPU device backing this renderer.
func (r *Renderer) Device() *gpu.GL {
	return r.dev
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Projection returns the perspective matrix for the current viewport.
func (r *Renderer) Projection() mgl32.Mat4 {
	return Perspective(r.config.FOV, r.config.Width, r.config.Height, r.config.Near, r.config.Far)
}

// Perspective builds a projection for a viewport, treating a zero height as square.
func Perspective(fovDeg float32, width, height int, near, far float32) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// ReadPixels returns the current framebuffer as tightly packed RGBA rows,
// bottom row first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
