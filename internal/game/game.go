// Package game implements the main game loop and state management.
package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/assets"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/config"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/audio"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/camera"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/debug"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/hud"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/input"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/renderer"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/shader"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/shaders"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/window"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/logger"
)

// Title is the window title.
const Title = "CSU44052 Serious Game"

// endLinger holds the last frame so the end cue can finish before the
// speaker is closed.
const endLinger = time.Second

// Game is the main game instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	assets   *assets.Manager
	shaders  *shader.Compiler
	shots    *debug.Screenshots
	capture  bool

	camera  *camera.Camera
	session *Session
	scene   *Scene
	text    *hud.Text
}

// New creates the window and GL context and loads the scene. Load
// failures are returned; nothing partially loaded is kept.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("assets", cfg.Assets.Root),
	)

	g := &Game{
		config:  cfg,
		input:   input.New(),
		audio:   audio.New(),
		assets:  assets.NewManager(),
		session: NewSession(cfg),
		shots:   debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "frame"),
	}

	if err := g.assets.AddDir(cfg.Assets.Root); err != nil {
		return nil, err
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:        Title,
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		CaptureMouse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after the window: the GL context must exist.
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		FOV:    cfg.Graphics.FOV,
		Near:   cfg.Graphics.Near,
		Far:    cfg.Graphics.Far,
	})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	dev := g.renderer.Device()

	g.shaders = shader.NewCompiler()
	var programs Programs
	if programs.Instanced, err = g.shaders.Program("instanced", shaders.InstancedVertexShader, shaders.InstancedFragmentShader); err != nil {
		g.Close()
		return nil, err
	}
	if programs.Skybox, err = g.shaders.Program("skybox", shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader); err != nil {
		g.Close()
		return nil, err
	}
	hudProgram, err := g.shaders.Program("hud", shaders.HUDVertexShader, shaders.HUDFragmentShader)
	if err != nil {
		g.Close()
		return nil, err
	}

	g.camera = camera.New(mgl32.Vec3{0, cfg.Camera.EyeHeight, 3}, mgl32.Vec3{0, 1, 0})
	g.camera.Speed = cfg.Camera.Speed
	g.camera.Sensitivity = cfg.Camera.Sensitivity

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info("scene seed", zap.Uint64("seed", seed))
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	g.scene, err = LoadScene(dev, g.assets, programs, cfg, rng, g.camera)
	if err != nil {
		g.Close()
		return nil, err
	}
	hits, misses := g.assets.Cache().Stats()
	logger.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
	g.assets.Cache().Clear()

	g.text = hud.New(dev, hudProgram)
	g.text.SetLines(g.session.HUDLines()...)

	g.audio.SetMuted(cfg.Audio.Muted)
	g.audio.SetMasterVolume(cfg.Audio.MasterVolume)
	g.audio.SetSFXVolume(cfg.Audio.SFXVolume)
	if err := g.audio.Init(); err != nil {
		// Sound is optional.
		logger.Warn("audio disabled", zap.Error(err))
	}

	logger.Info("game initialized successfully")
	return g, nil
}

// Run starts the main game loop. It returns once the round ends or the
// window is closed.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Input
		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				g.renderer.Resize(event.Width, event.Height)
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					g.session.Freeze()
				case sdl.SCANCODE_F12:
					g.capture = true
				}
			}
		}

		// 2. Simulation
		if !g.session.Frozen {
			g.update(dt)
		}

		// 3. Render
		g.render()
		if g.capture {
			g.screenshot()
		}
		g.window.SwapBuffers()

		if g.session.Frozen {
			g.finish()
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.config.Game.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("%s (%d fps)", Title, frameCount))
			}
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// update runs one frame of gameplay in the fixed order: timers, mouse look,
// collision-gated movement, pickups, animation.
func (g *Game) update(dt float32) {
	g.session.Tick(dt, g.camera)

	dx, dy := g.input.MouseDelta()
	g.camera.MouseControl(dx, dy)
	g.camera.KeyControl(g.input.Movement(), dt)

	got := g.scene.Collect(g.session, g.camera)
	if got.Bags > 0 {
		g.play(audio.CuePickup)
		logger.Debug("bag collected", zap.Int("score", g.session.Score))
	}
	if got.Stars > 0 {
		g.play(audio.CuePowerUp)
		logger.Debug("power-up", zap.Float32("speed", g.camera.Speed))
	}

	if !g.session.Frozen {
		g.scene.Animate(dt)
	}
	g.text.SetLines(g.session.HUDLines()...)
}

func (g *Game) render() {
	g.renderer.Begin()

	view := g.camera.ViewMatrix()
	g.scene.Draw(view, g.renderer.Projection(), g.camera.Position, g.session.Frozen)
	g.text.Draw(g.renderer.Size())

	g.renderer.End()
}

// screenshot saves the frame just rendered, before the buffer swap.
func (g *Game) screenshot() {
	g.capture = false
	pixels, w, h := g.renderer.ReadPixels()
	name, err := g.shots.Save(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name))
}

// finish reports the final score and stops the loop.
func (g *Game) finish() {
	cue := audio.CueTimeUp
	if g.session.Won() {
		cue = audio.CueWin
	}
	g.play(cue)

	fmt.Println(g.session.Report())
	logger.Info("round over",
		zap.Int("score", g.session.Score),
		zap.Int("total", g.session.Total),
		zap.Float32("elapsed", g.session.Elapsed),
	)
	g.running = false

	if g.audio.IsInitialized() && !g.audio.Muted() {
		time.Sleep(endLinger)
	}
}

func (g *Game) play(cue audio.Cue) {
	if err := g.audio.Play(cue); err != nil {
		logger.Warn("sound cue failed", zap.Error(err))
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.text != nil {
		g.text.Release()
	}
	if g.scene != nil {
		g.scene.Release()
	}
	if g.shaders != nil {
		g.shaders.Release()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
	if g.assets != nil {
		g.assets.Close()
	}
}
