package game

import (
	"fmt"
	"math/rand/v2"
	"path"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/config"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/camera"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/lighting"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/model"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/skybox"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/texture"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/game/entity"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/logger"
)

// GroundScale stretches the unit ground quad over the play field.
const GroundScale = 100

// StarSpinStep is the per-frame rotation of every star, in degrees.
const StarSpinStep = 1

// Programs are the linked shader programs the scene draws with.
type Programs struct {
	Instanced uint32
	Skybox    uint32
}

// Pickups counts what the player collected in one frame.
type Pickups struct {
	Bags  int
	Stars int
}

// Scene owns every model in the world and the per-frame instance lists.
type Scene struct {
	Trees     *model.Model
	BirdBody  *model.Model
	LeftWing  *model.Model
	RightWing *model.Model
	Bags      *model.Model
	Stars     *model.Model

	Ground *model.DrawUnit
	Sky    *skybox.Skybox // nil when the faces could not be loaded

	BagPickups  *entity.Collection
	StarPickups *entity.Collection
	Flock       *entity.Flock

	Sun lighting.Sun

	dev      gpu.Device
	programs Programs

	treeTransforms []mgl32.Mat4
	body, left     []mgl32.Mat4
	right, scratch []mgl32.Mat4

	// models whose draw error has already been logged
	reported map[*model.Model]bool
}

// LoadScene loads every model, scatters trees, bags and stars, and fills
// cam's obstacle registry with the trees before sealing it.
func LoadScene(dev gpu.Device, loader model.Loader, programs Programs, cfg *config.Config, rng *rand.Rand, cam *camera.Camera) (*Scene, error) {
	s := &Scene{
		BagPickups:  entity.NewCollection(entity.KindBag),
		StarPickups: entity.NewCollection(entity.KindStar),
		Sun:         lighting.DefaultSun(),
		dev:         dev,
		programs:    programs,
		reported:    make(map[*model.Model]bool),
	}
	g := cfg.Game
	a := cfg.Assets

	models := []struct {
		dst      **model.Model
		mesh     string
		capacity int
	}{
		{&s.Trees, a.Tree, g.Trees},
		{&s.BirdBody, a.BirdBody, g.Birds},
		{&s.LeftWing, a.BirdLeftWing, g.Birds},
		{&s.RightWing, a.BirdRightWing, g.Birds},
		{&s.Bags, a.Bag, g.Bags},
		{&s.Stars, a.Star, g.PowerUps},
	}
	for _, m := range models {
		loaded, err := model.Load(dev, loader, m.mesh, path.Dir(m.mesh), m.capacity, model.ImportOptions{})
		if err != nil {
			s.Release()
			return nil, fmt.Errorf("loading %s: %w", m.mesh, err)
		}
		*m.dst = loaded
	}

	ground, err := newGround(dev, loader, a.Ground)
	if err != nil {
		s.Release()
		return nil, err
	}
	s.Ground = ground

	sky, err := skybox.Load(dev, programs.Skybox, loader, a.Skybox)
	if err != nil {
		logger.Warn("skybox disabled", zap.Error(err))
	}
	s.Sky = sky

	if err := s.placeTrees(rng, g, cam); err != nil {
		s.Release()
		return nil, err
	}
	for _, p := range entity.Scatter(rng, g.Bags, g.FieldHalfExtent, 0) {
		s.BagPickups.Add(p, entity.BagTransform(p))
	}
	for _, p := range entity.Scatter(rng, g.PowerUps, g.FieldHalfExtent, entity.StarY) {
		s.StarPickups.Add(p, entity.StarTransform(p))
	}
	s.Flock = entity.NewFlock(rng, g.Birds)

	logger.Info("scene ready",
		zap.Int("trees", len(s.treeTransforms)),
		zap.Int("bags", s.BagPickups.Len()),
		zap.Int("stars", s.StarPickups.Len()),
		zap.Int("birds", len(s.Flock.Birds)),
		zap.Bool("skybox", s.Sky != nil),
	)
	return s, nil
}

// placeAttempts bounds tree placement at this many rolls per tree.
const placeAttempts = 100

// placeTrees scatters trees and registers each as an obstacle. A tree that
// would enclose the camera's starting point is rolled again.
func (s *Scene) placeTrees(rng *rand.Rand, g config.GameConfig, cam *camera.Camera) error {
	start := cam.Position
	for attempt := 0; len(s.treeTransforms) < g.Trees; attempt++ {
		if attempt == placeAttempts*g.Trees {
			return fmt.Errorf("placing trees: %d of %d placed after %d attempts, tree radius %v leaves no room around the start",
				len(s.treeTransforms), g.Trees, attempt, g.TreeRadius)
		}
		p := entity.Scatter(rng, 1, g.FieldHalfExtent, 0)[0]
		if p.Sub(start).Len() < g.TreeRadius+camera.CollisionMargin {
			continue
		}
		if err := cam.Obstacles.Add(camera.Obstacle{Position: p, Radius: g.TreeRadius}); err != nil {
			return fmt.Errorf("placing trees: %w", err)
		}
		s.treeTransforms = append(s.treeTransforms, mgl32.Translate3D(p.Elem()))
	}
	cam.Obstacles.Seal()
	return nil
}

// newGround builds the textured ground quad as a single-instance draw unit.
// Texture coordinates run to 100 so the grass tiles across the field.
func newGround(dev gpu.Device, loader model.Loader, texPath string) (*model.DrawUnit, error) {
	data, err := loader.ReadFile(texPath)
	if err != nil {
		return nil, fmt.Errorf("ground texture: %w", err)
	}
	tex, err := texture.Decode(texPath, data)
	if err != nil {
		return nil, fmt.Errorf("ground texture: %w", err)
	}
	if err := tex.Upload(dev); err != nil {
		return nil, err
	}

	up := mgl32.Vec3{0, 1, 0}
	sm := &model.Submesh{
		Name:     "ground",
		Material: "grass",
		Vertices: []model.Vertex{
			{Position: mgl32.Vec3{-1, 0, -1}, TexCoord: mgl32.Vec2{0, 0}, Normal: up},
			{Position: mgl32.Vec3{-1, 0, 1}, TexCoord: mgl32.Vec2{100, 0}, Normal: up},
			{Position: mgl32.Vec3{1, 0, 1}, TexCoord: mgl32.Vec2{100, 100}, Normal: up},
			{Position: mgl32.Vec3{1, 0, -1}, TexCoord: mgl32.Vec2{0, 100}, Normal: up},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	u, err := model.NewDrawUnit(dev, sm, 1)
	if err != nil {
		tex.Release(dev)
		return nil, err
	}
	u.Texture = tex
	return u, nil
}

// Collect removes the pickups under the player and applies their rewards.
func (s *Scene) Collect(session *Session, cam *camera.Camera) Pickups {
	at := cam.Ground()
	got := Pickups{
		Bags:  len(s.BagPickups.Collect(at)),
		Stars: len(s.StarPickups.Collect(at)),
	}
	session.AddScore(got.Bags)
	if got.Stars > 0 {
		session.PowerUp(cam)
	}
	return got
}

// Animate advances the birds and spins the stars.
func (s *Scene) Animate(dt float32) {
	s.Flock.Update(dt)
	s.StarPickups.Spin(mgl32.HomogRotate3DX(mgl32.DegToRad(StarSpinStep)))
}

// Draw renders the ground, the sky and, unless frozen, every model.
func (s *Scene) Draw(view, projection mgl32.Mat4, eye mgl32.Vec3, frozen bool) {
	p := s.programs.Instanced
	s.Sun.Apply(s.dev, p, eye)

	lighting.Grass.Apply(s.dev, p)
	ground := mgl32.Scale3D(GroundScale, GroundScale, GroundScale)
	if err := s.Ground.Draw(p, ground, view, projection, []mgl32.Mat4{mgl32.Ident4()}); err != nil {
		logger.Error("ground draw failed", zap.Error(err))
	}

	if s.Sky != nil {
		s.Sky.Draw(view, projection)
	}

	if frozen {
		return
	}

	lighting.Wood.Apply(s.dev, p)
	s.draw(s.Trees, view, projection, s.treeTransforms)

	s.body, s.left, s.right = s.Flock.Transforms(s.body[:0], s.left[:0], s.right[:0])
	s.draw(s.BirdBody, view, projection, s.body)
	s.draw(s.LeftWing, view, projection, s.left)
	s.draw(s.RightWing, view, projection, s.right)

	lighting.Plastic.Apply(s.dev, p)
	s.scratch = s.BagPickups.Transforms(s.scratch[:0])
	s.draw(s.Bags, view, projection, s.scratch)
	s.scratch = s.StarPickups.Transforms(s.scratch[:0])
	s.draw(s.Stars, view, projection, s.scratch)
}

func (s *Scene) draw(m *model.Model, view, projection mgl32.Mat4, transforms []mgl32.Mat4) {
	err := m.DrawInstanced(s.programs.Instanced, mgl32.Ident4(), view, projection, transforms)
	if err != nil && !s.reported[m] {
		s.reported[m] = true
		logger.Error("draw skipped", zap.String("model", m.Name), zap.Error(err))
	}
}

// Release frees every GPU resource the scene owns.
func (s *Scene) Release() {
	for _, m := range []*model.Model{s.Trees, s.BirdBody, s.LeftWing, s.RightWing, s.Bags, s.Stars} {
		if m != nil {
			m.Release()
		}
	}
	if s.Ground != nil {
		if s.Ground.Texture != nil {
			s.Ground.Texture.Release(s.dev)
		}
		s.Ground.Release()
	}
	if s.Sky != nil {
		s.Sky.Release()
	}
}
